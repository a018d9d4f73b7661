package types

import "context"

// MsgServer defines the cdp module's message service, a hand-rolled
// (non-protobuf) convention used throughout this codebase's application
// modules.
type MsgServer interface {
	OpenCdp(context.Context, *MsgOpenCdp) (*MsgOpenCdpResponse, error)
	CloseCdp(context.Context, *MsgCloseCdp) (*MsgCloseCdpResponse, error)
	PartialCloseCdp(context.Context, *MsgPartialCloseCdp) (*MsgPartialCloseCdpResponse, error)
	BorrowMore(context.Context, *MsgBorrowMore) (*MsgBorrowMoreResponse, error)
	TopUpCdp(context.Context, *MsgTopUpCdp) (*MsgTopUpCdpResponse, error)
	RemoveCollateral(context.Context, *MsgRemoveCollateral) (*MsgRemoveCollateralResponse, error)
	MarkForLiquidation(context.Context, *MsgMarkForLiquidation) (*MsgMarkForLiquidationResponse, error)
	LiquidateWithMarker(context.Context, *MsgLiquidateWithMarker) (*MsgLiquidateResponse, error)
	LiquidateWithoutMarker(context.Context, *MsgLiquidateWithoutMarker) (*MsgLiquidateResponse, error)
	ForceLiquidate(context.Context, *MsgForceLiquidate) (*MsgForceLiquidateResponse, error)
	ForceMint(context.Context, *MsgForceMint) (*MsgForceMintResponse, error)
	RetrieveLeftover(context.Context, *MsgRetrieveLeftover) (*MsgRetrieveLeftoverResponse, error)
	BurnCdp(context.Context, *MsgBurnCdp) (*MsgBurnCdpResponse, error)
	BurnMarker(context.Context, *MsgBurnMarker) (*MsgBurnMarkerResponse, error)
	BurnLiquidationReceipt(context.Context, *MsgBurnLiquidationReceipt) (*MsgBurnLiquidationReceiptResponse, error)
	AddCollateral(context.Context, *MsgAddCollateral) (*MsgAddCollateralResponse, error)
	AddPoolCollateral(context.Context, *MsgAddPoolCollateral) (*MsgAddPoolCollateralResponse, error)
	ChangeCollateralPrice(context.Context, *MsgChangeCollateralPrice) (*MsgChangeCollateralPriceResponse, error)
}

// RegisterMsgServer does nothing with impl: a gRPC registration would
// require generated protobuf bindings this codebase doesn't produce for its
// application modules, so the msg server passed in by module.go is not
// routed anywhere.
func RegisterMsgServer(server interface{}, impl MsgServer) {}

// QueryServer defines the cdp module's read-only query surface.
type QueryServer interface {
	Cdp(context.Context, *QueryCdpRequest) (*QueryCdpResponse, error)
	CollateralInfo(context.Context, *QueryCollateralInfoRequest) (*QueryCollateralInfoResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

func RegisterQueryServer(server interface{}, impl QueryServer) {}

type QueryCdpRequest struct {
	CdpId uint64 `json:"cdp_id"`
}
type QueryCdpResponse struct {
	Cdp Cdp `json:"cdp"`
}

type QueryCollateralInfoRequest struct {
	Denom string `json:"denom"`
}
type QueryCollateralInfoResponse struct {
	CollateralInfo CollateralInfo `json:"collateral_info"`
}

type QueryParamsRequest struct{}
type QueryParamsResponse struct {
	Params Params `json:"params"`
}
