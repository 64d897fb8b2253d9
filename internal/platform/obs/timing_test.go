package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	require.Equal(t, "abc", RequestID(ctx))
	require.Empty(t, RequestID(context.Background()))
}

func TestTimeAcceptsNilAndError(t *testing.T) {
	done := Time(context.Background(), "test.op")
	done(nil)

	err := errors.New("boom")
	Time(context.Background(), "test.op")(&err)
	require.EqualError(t, err, "boom")
}
