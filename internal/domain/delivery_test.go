package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelivery_PayerAndBuyer(t *testing.T) {
	t.Parallel()

	sale := &Delivery{Orders: []Order{{BuyerID: 5, AmountPaid: 800}, {BuyerID: 5, AmountPaid: 450}}}
	payer, ok := sale.Payer()
	require.True(t, ok)
	require.Equal(t, UserID(5), payer)
	require.Equal(t, int64(1250), sale.BooksTotal())
	require.True(t, sale.WellFormed())

	swap := &Delivery{Swap: &Swap{SenderID: 1, ReceiverID: 2}}
	payer, ok = swap.Payer()
	require.True(t, ok)
	require.Equal(t, UserID(1), payer)
	_, ok = swap.Buyer()
	require.False(t, ok)

	empty := &Delivery{}
	_, ok = empty.Payer()
	require.False(t, ok)
	require.False(t, empty.WellFormed())
}

func TestDelivery_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := &Delivery{
		Position: &Coordinates{Lat: 1, Lng: 2},
		Rider:    &Rider{ID: 4, Name: "Wanjiru"},
		Orders:   []Order{{ID: 1}},
	}
	cp := orig.Clone()
	cp.Position.Lat = 9
	cp.Rider.Name = "x"
	cp.Orders[0].ID = 2

	require.Equal(t, 1.0, orig.Position.Lat)
	require.Equal(t, "Wanjiru", orig.Rider.Name)
	require.Equal(t, int64(1), orig.Orders[0].ID)
	require.Nil(t, (*Delivery)(nil).Clone())
}

func TestFragmentConstructors(t *testing.T) {
	t.Parallel()

	f := StatusFragment(StatusShipped)
	require.Equal(t, StatusShipped, *f.Status)
	require.Nil(t, f.Latitude)

	p := PositionFragment(-0.42, 36.95)
	require.Nil(t, p.Status)
	require.Equal(t, -0.42, *p.Latitude)
	require.True(t, Fragment{}.Empty())
}

func TestCapabilities_AllowsPatch(t *testing.T) {
	t.Parallel()

	pickup := "Gate A"
	c := Capabilities{CanEditDropoff: true}
	require.False(t, c.AllowsPatch(DeliveryPatch{PickupLocation: &pickup}))
	require.True(t, c.AllowsPatch(DeliveryPatch{DropoffLocation: &pickup}))
	require.True(t, c.CanEdit(EndpointDropoff))
	require.False(t, c.CanEdit(Endpoint("middle")))
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	got, ok := NormalizePhone("0712345678")
	require.True(t, ok)
	require.Equal(t, "254712345678", got)

	got, ok = NormalizePhone("+254 112 345 678")
	require.True(t, ok)
	require.Equal(t, "254112345678", got)

	got, ok = NormalizePhone("254712345678")
	require.True(t, ok)
	require.Equal(t, "254712345678", got)

	_, ok = NormalizePhone("12345")
	require.False(t, ok)
	_, ok = NormalizePhone("+15551234567")
	require.False(t, ok)
}
