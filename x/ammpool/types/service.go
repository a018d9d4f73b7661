package types

import "context"

// MsgServer defines the ammpool module's message service, following the
// same hand-rolled non-protobuf convention as x/cdp and x/peg.
type MsgServer interface {
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}

func RegisterMsgServer(server interface{}, impl MsgServer) {}

type QueryServer interface {
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

func RegisterQueryServer(server interface{}, impl QueryServer) {}

type QueryPoolRequest struct{}
type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

type QueryPriceRequest struct{}
type QueryPriceResponse struct {
	Price string `json:"price"`
}

type QueryParamsRequest struct{}
type QueryParamsResponse struct {
	Params Params `json:"params"`
}
