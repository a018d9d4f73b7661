package types

import "context"

// MsgServer defines the peg module's message service, following the same
// hand-rolled non-protobuf convention as x/cdp/types/service.go.
type MsgServer interface {
	Update(context.Context, *MsgUpdate) (*MsgUpdateResponse, error)
	SetKpKi(context.Context, *MsgSetKpKi) (*MsgSetKpKiResponse, error)
	SetMinMaxInterest(context.Context, *MsgSetMinMaxInterest) (*MsgSetMinMaxInterestResponse, error)
	SetAllowedDeviation(context.Context, *MsgSetAllowedDeviation) (*MsgSetAllowedDeviationResponse, error)
	SetPriceError(context.Context, *MsgSetPriceError) (*MsgSetPriceErrorResponse, error)
	SetUpdateDelays(context.Context, *MsgSetUpdateDelays) (*MsgSetUpdateDelaysResponse, error)
	SetNumberOfPricesCached(context.Context, *MsgSetNumberOfPricesCached) (*MsgSetNumberOfPricesCachedResponse, error)
	SetRewardPerSecond(context.Context, *MsgSetRewardPerSecond) (*MsgSetRewardPerSecondResponse, error)
}

func RegisterMsgServer(server interface{}, impl MsgServer) {}

type QueryServer interface {
	State(context.Context, *QueryStateRequest) (*QueryStateResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

func RegisterQueryServer(server interface{}, impl QueryServer) {}

type QueryStateRequest struct{}
type QueryStateResponse struct {
	State PegState `json:"state"`
}

type QueryParamsRequest struct{}
type QueryParamsResponse struct {
	Params Params `json:"params"`
}
