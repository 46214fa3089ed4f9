package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_logger "itemsvc/pkg/logger/mock"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

var errBrokerDown = errors.New("broker down")

type fakeWriter struct {
	failures int
	calls    int
	written  []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.calls <= w.failures {
		return errBrokerDown
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_Send(t *testing.T) {
	testCases := []struct {
		desc      string
		failures  int
		wantCalls int
		wantErr   error
	}{
		{desc: "FirstAttempt", failures: 0, wantCalls: 1},
		{desc: "RecoversAfterRetry", failures: 2, wantCalls: 3},
		{desc: "GivesUp", failures: 5, wantCalls: 3, wantErr: errBrokerDown},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().
				LogAttrs(gomock.Any(), gomock.Any(), "kafka write failed, retrying", gomock.Any()).
				AnyTimes()

			writer := &fakeWriter{failures: tc.failures}
			p, err := newProducer(writer, "items", log,
				MaxAttempts(3),
				BaseRetryDelay(time.Millisecond),
				MaxRetryDelay(2*time.Millisecond),
			)
			require.NoError(t, err)

			err = p.Send(context.Background(), kafka.Message{Key: []byte("k"), Value: []byte("v")})
			require.Equal(t, tc.wantCalls, writer.calls)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, writer.written)
				return
			}
			require.NoError(t, err)
			require.Len(t, writer.written, 1)
		})
	}
}

func TestProducer_SendStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := mock_logger.NewMockLogger(ctrl)
	log.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	writer := &fakeWriter{failures: 100}
	p, err := newProducer(writer, "items", log,
		MaxAttempts(10),
		BaseRetryDelay(time.Second),
		MaxRetryDelay(5*time.Second),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = p.Send(ctx, kafka.Message{Value: []byte("v")})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, writer.calls, 10)
}

func TestNewProducer_InvalidOptions(t *testing.T) {
	testCases := []struct {
		desc string
		opts []Option
	}{
		{desc: "ZeroAttempts", opts: []Option{MaxAttempts(0)}},
		{desc: "NegativeBaseDelay", opts: []Option{BaseRetryDelay(-time.Second)}},
		{desc: "BaseAboveMax", opts: []Option{BaseRetryDelay(time.Minute), MaxRetryDelay(time.Second)}},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			_, err := newProducer(&fakeWriter{}, "items", nil, tc.opts...)
			require.Error(t, err)
		})
	}
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	p, err := newProducer(writer, "items", nil)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.True(t, writer.closed)
	require.Equal(t, "items", p.Topic())
}
