package types

import "context"

// MsgServer defines the proxy module's message service, following the same
// hand-rolled non-protobuf convention as x/cdp and x/peg.
type MsgServer interface {
	Update(context.Context, *MsgUpdate) (*MsgUpdateResponse, error)

	ChangeCollateralPrice(context.Context, *MsgChangeCollateralPrice) (*MsgChangeCollateralPriceResponse, error)
	AddCollateral(context.Context, *MsgAddCollateral) (*MsgAddCollateralResponse, error)
	AddPoolCollateral(context.Context, *MsgAddPoolCollateral) (*MsgAddPoolCollateralResponse, error)
	EditCollateral(context.Context, *MsgEditCollateral) (*MsgEditCollateralResponse, error)
	EditPoolCollateral(context.Context, *MsgEditPoolCollateral) (*MsgEditPoolCollateralResponse, error)
	SetStops(context.Context, *MsgSetStops) (*MsgSetStopsResponse, error)
	SetDelays(context.Context, *MsgSetDelays) (*MsgSetDelaysResponse, error)
	SetMaxVectorLength(context.Context, *MsgSetMaxVectorLength) (*MsgSetMaxVectorLengthResponse, error)
	SetMinimumMint(context.Context, *MsgSetMinimumMint) (*MsgSetMinimumMintResponse, error)
	SetFines(context.Context, *MsgSetFines) (*MsgSetFinesResponse, error)
	SetForceMintMultiplier(context.Context, *MsgSetForceMintMultiplier) (*MsgSetForceMintMultiplierResponse, error)

	SetPegKpKi(context.Context, *MsgSetPegKpKi) (*MsgSetPegKpKiResponse, error)
	SetPegMinMaxInterest(context.Context, *MsgSetPegMinMaxInterest) (*MsgSetPegMinMaxInterestResponse, error)
	SetPegAllowedDeviation(context.Context, *MsgSetPegAllowedDeviation) (*MsgSetPegAllowedDeviationResponse, error)
	SetPegPriceError(context.Context, *MsgSetPegPriceError) (*MsgSetPegPriceErrorResponse, error)
	SetPegUpdateDelays(context.Context, *MsgSetPegUpdateDelays) (*MsgSetPegUpdateDelaysResponse, error)
	SetPegNumberOfPricesCached(context.Context, *MsgSetPegNumberOfPricesCached) (*MsgSetPegNumberOfPricesCachedResponse, error)
	SetPegRewardPerSecond(context.Context, *MsgSetPegRewardPerSecond) (*MsgSetPegRewardPerSecondResponse, error)

	GrantBadge(context.Context, *MsgGrantBadge) (*MsgGrantBadgeResponse, error)
}

func RegisterMsgServer(server interface{}, impl MsgServer) {}

type QueryServer interface {
	Badge(context.Context, *QueryBadgeRequest) (*QueryBadgeResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

func RegisterQueryServer(server interface{}, impl QueryServer) {}

type QueryBadgeRequest struct {
	Holder string `json:"holder"`
}
type QueryBadgeResponse struct {
	Share string `json:"share"`
}

type QueryParamsRequest struct{}
type QueryParamsResponse struct {
	Params Params `json:"params"`
}
