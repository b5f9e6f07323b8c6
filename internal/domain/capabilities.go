package domain

// Role is the viewer's role relative to a delivery.
type Role string

// List of roles a viewer may hold
const (
	RoleProposer Role = "Proposer"
	RolePartner  Role = "Partner"
	RoleBuyer    Role = "Buyer"
	RoleViewer   Role = "Viewer"
)

// Capabilities is what the acting user may do with a delivery.
// It is derived, never stored.
type Capabilities struct {
	CanEditPickup  bool
	CanEditDropoff bool
	IsPayer        bool
	RoleName       Role
	LabelPickup    string
	LabelDropoff   string
}

// CanEdit reports whether the endpoint is editable under these capabilities.
func (c Capabilities) CanEdit(e Endpoint) bool {
	switch e {
	case EndpointPickup:
		return c.CanEditPickup
	case EndpointDropoff:
		return c.CanEditDropoff
	default:
		return false
	}
}

// AllowsPatch reports whether every endpoint touched by p is editable.
func (c Capabilities) AllowsPatch(p DeliveryPatch) bool {
	if p.PickupLocation != nil && !c.CanEditPickup {
		return false
	}
	if p.DropoffLocation != nil && !c.CanEditDropoff {
		return false
	}
	return true
}
