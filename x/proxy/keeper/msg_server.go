package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

type msgServer struct {
	Keeper
}

func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (k msgServer) Update(goCtx context.Context, msg *types.MsgUpdate) (*types.MsgUpdateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, err
	}
	ticked, err := k.Keeper.Update(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &types.MsgUpdateResponse{Ticked: ticked}, nil
}

func (k msgServer) ChangeCollateralPrice(goCtx context.Context, msg *types.MsgChangeCollateralPrice) (*types.MsgChangeCollateralPriceResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	price, err := decimal.NewFromString(msg.UsdPrice)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.ChangeCollateralPrice(ctx, msg.Signers, msg.Denom, price); err != nil {
		return nil, err
	}
	return &types.MsgChangeCollateralPriceResponse{}, nil
}

func (k msgServer) AddCollateral(goCtx context.Context, msg *types.MsgAddCollateral) (*types.MsgAddCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	mcr, err := decimal.NewFromString(msg.Mcr)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(msg.UsdPrice)
	if err != nil {
		return nil, err
	}
	maxShare, err := decimal.NewFromString(msg.MaxStabShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.AddCollateral(ctx, msg.Signers, msg.Denom, mcr, price, maxShare); err != nil {
		return nil, err
	}
	return &types.MsgAddCollateralResponse{}, nil
}

func (k msgServer) AddPoolCollateral(goCtx context.Context, msg *types.MsgAddPoolCollateral) (*types.MsgAddPoolCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	maxShare, err := decimal.NewFromString(msg.MaxPoolShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.AddPoolCollateral(ctx, msg.Signers, msg.Denom, msg.ParentDenom, msg.Kind, msg.RedemptionRef, maxShare); err != nil {
		return nil, err
	}
	return &types.MsgAddPoolCollateralResponse{}, nil
}

func (k msgServer) EditCollateral(goCtx context.Context, msg *types.MsgEditCollateral) (*types.MsgEditCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	mcr, err := decimal.NewFromString(msg.Mcr)
	if err != nil {
		return nil, err
	}
	maxShare, err := decimal.NewFromString(msg.MaxStabShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.EditCollateral(ctx, msg.Signers, msg.Denom, mcr, msg.Accepted, maxShare); err != nil {
		return nil, err
	}
	return &types.MsgEditCollateralResponse{}, nil
}

func (k msgServer) EditPoolCollateral(goCtx context.Context, msg *types.MsgEditPoolCollateral) (*types.MsgEditPoolCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	maxShare, err := decimal.NewFromString(msg.MaxPoolShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.EditPoolCollateral(ctx, msg.Signers, msg.Denom, msg.Accepted, maxShare); err != nil {
		return nil, err
	}
	return &types.MsgEditPoolCollateralResponse{}, nil
}

func (k msgServer) SetStops(goCtx context.Context, msg *types.MsgSetStops) (*types.MsgSetStopsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetStops(ctx, msg.Signers, msg.LiquidationsStopped, msg.OpeningsStopped, msg.ClosingsStopped, msg.ForceMintStopped, msg.ForceLiquidateStopped); err != nil {
		return nil, err
	}
	return &types.MsgSetStopsResponse{}, nil
}

func (k msgServer) SetDelays(goCtx context.Context, msg *types.MsgSetDelays) (*types.MsgSetDelaysResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetDelays(ctx, msg.Signers, msg.LiquidationDelayMinutes, msg.UnmarkedDelayMinutes); err != nil {
		return nil, err
	}
	return &types.MsgSetDelaysResponse{}, nil
}

func (k msgServer) SetMaxVectorLength(goCtx context.Context, msg *types.MsgSetMaxVectorLength) (*types.MsgSetMaxVectorLengthResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetMaxVectorLength(ctx, msg.Signers, msg.MaxVectorLength); err != nil {
		return nil, err
	}
	return &types.MsgSetMaxVectorLengthResponse{}, nil
}

func (k msgServer) SetMinimumMint(goCtx context.Context, msg *types.MsgSetMinimumMint) (*types.MsgSetMinimumMintResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	minimumMint, err := decimal.NewFromString(msg.MinimumMint)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetMinimumMint(ctx, msg.Signers, minimumMint); err != nil {
		return nil, err
	}
	return &types.MsgSetMinimumMintResponse{}, nil
}

func (k msgServer) SetFines(goCtx context.Context, msg *types.MsgSetFines) (*types.MsgSetFinesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetFines(ctx, msg.Signers, msg.LiquidatorFineBasisPoints, msg.ProtocolFineBasisPoints); err != nil {
		return nil, err
	}
	return &types.MsgSetFinesResponse{}, nil
}

func (k msgServer) SetForceMintMultiplier(goCtx context.Context, msg *types.MsgSetForceMintMultiplier) (*types.MsgSetForceMintMultiplierResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetForceMintMultiplier(ctx, msg.Signers, msg.ForceMintCrMultiplierBasisPoints); err != nil {
		return nil, err
	}
	return &types.MsgSetForceMintMultiplierResponse{}, nil
}

func (k msgServer) SetPegKpKi(goCtx context.Context, msg *types.MsgSetPegKpKi) (*types.MsgSetPegKpKiResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	kp, err := decimal.NewFromString(msg.Kp)
	if err != nil {
		return nil, err
	}
	ki, err := decimal.NewFromString(msg.Ki)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetPegKpKi(ctx, msg.Signers, kp, ki); err != nil {
		return nil, err
	}
	return &types.MsgSetPegKpKiResponse{}, nil
}

func (k msgServer) SetPegMinMaxInterest(goCtx context.Context, msg *types.MsgSetPegMinMaxInterest) (*types.MsgSetPegMinMaxInterestResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	min, err := decimal.NewFromString(msg.Min)
	if err != nil {
		return nil, err
	}
	max, err := decimal.NewFromString(msg.Max)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetPegMinMaxInterest(ctx, msg.Signers, min, max); err != nil {
		return nil, err
	}
	return &types.MsgSetPegMinMaxInterestResponse{}, nil
}

func (k msgServer) SetPegAllowedDeviation(goCtx context.Context, msg *types.MsgSetPegAllowedDeviation) (*types.MsgSetPegAllowedDeviationResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	deviation, err := decimal.NewFromString(msg.AllowedDeviation)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetPegAllowedDeviation(ctx, msg.Signers, deviation); err != nil {
		return nil, err
	}
	return &types.MsgSetPegAllowedDeviationResponse{}, nil
}

func (k msgServer) SetPegPriceError(goCtx context.Context, msg *types.MsgSetPegPriceError) (*types.MsgSetPegPriceErrorResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	maxErr, err := decimal.NewFromString(msg.MaxPriceError)
	if err != nil {
		return nil, err
	}
	offset, err := decimal.NewFromString(msg.PriceErrorOffset)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetPegPriceError(ctx, msg.Signers, maxErr, offset); err != nil {
		return nil, err
	}
	return &types.MsgSetPegPriceErrorResponse{}, nil
}

func (k msgServer) SetPegUpdateDelays(goCtx context.Context, msg *types.MsgSetPegUpdateDelays) (*types.MsgSetPegUpdateDelaysResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetPegUpdateDelays(ctx, msg.Signers, msg.UpdateDelayMinutes); err != nil {
		return nil, err
	}
	return &types.MsgSetPegUpdateDelaysResponse{}, nil
}

func (k msgServer) SetPegNumberOfPricesCached(goCtx context.Context, msg *types.MsgSetPegNumberOfPricesCached) (*types.MsgSetPegNumberOfPricesCachedResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.SetPegNumberOfPricesCached(ctx, msg.Signers, msg.NumberOfCachedPrices); err != nil {
		return nil, err
	}
	return &types.MsgSetPegNumberOfPricesCachedResponse{}, nil
}

func (k msgServer) SetPegRewardPerSecond(goCtx context.Context, msg *types.MsgSetPegRewardPerSecond) (*types.MsgSetPegRewardPerSecondResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	reward, err := decimal.NewFromString(msg.RewardPerSecond)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SetPegRewardPerSecond(ctx, msg.Signers, reward); err != nil {
		return nil, err
	}
	return &types.MsgSetPegRewardPerSecondResponse{}, nil
}

func (k msgServer) GrantBadge(goCtx context.Context, msg *types.MsgGrantBadge) (*types.MsgGrantBadgeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	share, err := decimal.NewFromString(msg.Share)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.GrantBadge(ctx, msg.Signers, msg.Holder, share); err != nil {
		return nil, err
	}
	return &types.MsgGrantBadgeResponse{}, nil
}
