package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoutingError_UnwrapAndMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("zero results")
	err := fmt.Errorf("compute fee: %w", &RoutingError{Location: "Kamakwa", Err: cause})

	require.True(t, IsRouting(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), `"Kamakwa"`)
	require.False(t, IsRejected(err))
}

func TestTransitionRejected_Message(t *testing.T) {
	t.Parallel()

	err := Rejected("cancel", "shipped", "delivery is locked")
	require.True(t, IsRejected(err))
	require.Equal(t, "cancel rejected in status shipped: delivery is locked", err.Error())

	require.False(t, errors.Is(err, Forbidden))

	err = Denied("edit", "not the payer")
	require.Equal(t, "edit rejected: not the payer", err.Error())
	require.True(t, IsRejected(err))
	require.ErrorIs(t, fmt.Errorf("wrap: %w", err), Forbidden)
}

func TestPaymentInitiationError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("gateway timeout")
	err := &PaymentInitiationError{DeliveryID: 7, Err: cause}

	require.True(t, IsPaymentInitiation(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "delivery 7")
}

func TestChannelError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("EOF")
	var err error = &ChannelError{DeliveryID: 3, Err: cause}

	var ce *ChannelError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, int64(3), ce.DeliveryID)
	require.ErrorIs(t, err, cause)
}
