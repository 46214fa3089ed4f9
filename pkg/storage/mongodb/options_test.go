package mongodb_test

import (
	"context"
	"testing"
	"time"

	"itemsvc/internal/config"
	mock_logger "itemsvc/pkg/logger/mock"
	"itemsvc/pkg/storage/mongodb"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestNewMongo_InvalidOptions(t *testing.T) {
	testCases := []struct {
		desc string
		opts []mongodb.Option
	}{
		{desc: "ZeroPool", opts: []mongodb.Option{mongodb.MaxPoolSize(0)}},
		{desc: "NegativeAttempts", opts: []mongodb.Option{mongodb.MaxConnAttempts(-1)}},
		{desc: "ZeroConnectTimeout", opts: []mongodb.Option{mongodb.ConnectTimeout(0)}},
		{desc: "ZeroMaxDelay", opts: []mongodb.Option{mongodb.MaxRetryDelay(0)}},
		{desc: "BaseAboveMax", opts: []mongodb.Option{mongodb.BaseRetryDelay(10 * time.Second)}},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m, err := mongodb.NewMongo(
				context.Background(),
				&config.Mongo{URI: "mongodb://localhost:27017", Database: "items"},
				mock_logger.NewMockLogger(ctrl),
				tc.opts...,
			)
			require.ErrorContains(t, err, "validation")
			require.Nil(t, m)
		})
	}
}
