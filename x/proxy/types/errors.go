package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrInsufficientCapability = errorsmod.Register(ModuleName, 2, "signers do not hold enough of the badge supply")
	ErrUnknownHolder          = errorsmod.Register(ModuleName, 3, "unknown badge holder")
	ErrInvalidShare           = errorsmod.Register(ModuleName, 4, "badge share must be in [0,1]")
	ErrNotAuthorized          = errorsmod.Register(ModuleName, 5, "not authorized")
)

const (
	EventTypeUpdate      = "proxy_update"
	EventTypeAdminAction = "proxy_admin_action"

	AttributeKeyCaller  = "caller"
	AttributeKeyAction  = "action"
	AttributeKeyQuorum  = "quorum"
)
