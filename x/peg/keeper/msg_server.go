package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/peg/types"
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

func (k msgServer) SetKpKi(goCtx context.Context, msg *types.MsgSetKpKi) (*types.MsgSetKpKiResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	kp, err := decimal.NewFromString(msg.Kp)
	if err != nil {
		return nil, err
	}
	ki, err := decimal.NewFromString(msg.Ki)
	if err != nil {
		return nil, err
	}
	params := k.Keeper.GetParams(ctx)
	params.Kp, params.Ki = kp, ki
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetKpKiResponse{}, nil
}

func (k msgServer) SetMinMaxInterest(goCtx context.Context, msg *types.MsgSetMinMaxInterest) (*types.MsgSetMinMaxInterestResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	min, err := decimal.NewFromString(msg.Min)
	if err != nil {
		return nil, err
	}
	max, err := decimal.NewFromString(msg.Max)
	if err != nil {
		return nil, err
	}
	params := k.Keeper.GetParams(ctx)
	params.MinInterestRate, params.MaxInterestRate = min, max
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetMinMaxInterestResponse{}, nil
}

func (k msgServer) SetAllowedDeviation(goCtx context.Context, msg *types.MsgSetAllowedDeviation) (*types.MsgSetAllowedDeviationResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	dev, err := decimal.NewFromString(msg.Deviation)
	if err != nil {
		return nil, err
	}
	params := k.Keeper.GetParams(ctx)
	params.AllowedDeviation = dev
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetAllowedDeviationResponse{}, nil
}

func (k msgServer) SetPriceError(goCtx context.Context, msg *types.MsgSetPriceError) (*types.MsgSetPriceErrorResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	maxErr, err := decimal.NewFromString(msg.Max)
	if err != nil {
		return nil, err
	}
	offset, err := decimal.NewFromString(msg.Offset)
	if err != nil {
		return nil, err
	}
	params := k.Keeper.GetParams(ctx)
	params.MaxPriceError, params.PriceErrorOffset = maxErr, offset
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetPriceErrorResponse{}, nil
}

func (k msgServer) SetUpdateDelays(goCtx context.Context, msg *types.MsgSetUpdateDelays) (*types.MsgSetUpdateDelaysResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	params := k.Keeper.GetParams(ctx)
	params.UpdateDelayMinutes = msg.UpdateDelayMinutes
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetUpdateDelaysResponse{}, nil
}

func (k msgServer) SetNumberOfPricesCached(goCtx context.Context, msg *types.MsgSetNumberOfPricesCached) (*types.MsgSetNumberOfPricesCachedResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	params := k.Keeper.GetParams(ctx)
	params.NumberOfCachedPrices = msg.N
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetNumberOfPricesCachedResponse{}, nil
}

func (k msgServer) SetRewardPerSecond(goCtx context.Context, msg *types.MsgSetRewardPerSecond) (*types.MsgSetRewardPerSecondResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	value, err := decimal.NewFromString(msg.Value)
	if err != nil {
		return nil, err
	}
	params := k.Keeper.GetParams(ctx)
	params.RewardPerSecond = value
	if err := k.Keeper.SetParams(ctx, params); err != nil {
		return nil, err
	}
	return &types.MsgSetRewardPerSecondResponse{}, nil
}
