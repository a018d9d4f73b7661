package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of types.MsgServer.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (k msgServer) OpenCdp(goCtx context.Context, msg *types.MsgOpenCdp) (*types.MsgOpenCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	stabToMint, err := decimal.NewFromString(msg.StabToMint)
	if err != nil {
		return nil, err
	}
	id, err := k.Keeper.OpenCdp(ctx, owner, msg.Collateral, stabToMint)
	if err != nil {
		return nil, err
	}
	return &types.MsgOpenCdpResponse{CdpId: id}, nil
}

func (k msgServer) CloseCdp(goCtx context.Context, msg *types.MsgCloseCdp) (*types.MsgCloseCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	payment, err := decimal.NewFromString(msg.StabPayment)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.CloseCdp(ctx, owner, msg.CdpId, payment); err != nil {
		return nil, err
	}
	return &types.MsgCloseCdpResponse{}, nil
}

func (k msgServer) PartialCloseCdp(goCtx context.Context, msg *types.MsgPartialCloseCdp) (*types.MsgPartialCloseCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	repayment, err := decimal.NewFromString(msg.Repayment)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.PartialCloseCdp(ctx, owner, msg.CdpId, repayment); err != nil {
		return nil, err
	}
	return &types.MsgPartialCloseCdpResponse{}, nil
}

func (k msgServer) BorrowMore(goCtx context.Context, msg *types.MsgBorrowMore) (*types.MsgBorrowMoreResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	additional, err := decimal.NewFromString(msg.AdditionalStab)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.BorrowMore(ctx, owner, msg.CdpId, additional); err != nil {
		return nil, err
	}
	return &types.MsgBorrowMoreResponse{}, nil
}

func (k msgServer) TopUpCdp(goCtx context.Context, msg *types.MsgTopUpCdp) (*types.MsgTopUpCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.TopUpCdp(ctx, owner, msg.CdpId, msg.Collateral); err != nil {
		return nil, err
	}
	return &types.MsgTopUpCdpResponse{}, nil
}

func (k msgServer) RemoveCollateral(goCtx context.Context, msg *types.MsgRemoveCollateral) (*types.MsgRemoveCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.RemoveCollateral(ctx, owner, msg.CdpId, amount); err != nil {
		return nil, err
	}
	return &types.MsgRemoveCollateralResponse{}, nil
}

func (k msgServer) MarkForLiquidation(goCtx context.Context, msg *types.MsgMarkForLiquidation) (*types.MsgMarkForLiquidationResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	marker, err := k.Keeper.MarkForLiquidation(ctx, msg.Parent)
	if err != nil {
		return nil, err
	}
	return &types.MsgMarkForLiquidationResponse{MarkerId: marker.Id}, nil
}

func (k msgServer) LiquidateWithMarker(goCtx context.Context, msg *types.MsgLiquidateWithMarker) (*types.MsgLiquidateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, err
	}
	payment, err := decimal.NewFromString(msg.Payment)
	if err != nil {
		return nil, err
	}
	excess, err := k.Keeper.LiquidatePositionWithMarker(ctx, caller, msg.MarkerId, payment)
	if err != nil {
		return nil, err
	}
	return &types.MsgLiquidateResponse{Excess: excess.String()}, nil
}

func (k msgServer) LiquidateWithoutMarker(goCtx context.Context, msg *types.MsgLiquidateWithoutMarker) (*types.MsgLiquidateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, err
	}
	payment, err := decimal.NewFromString(msg.Payment)
	if err != nil {
		return nil, err
	}
	excess, err := k.Keeper.LiquidatePositionWithoutMarker(ctx, caller, msg.CdpId, payment, msg.Skip)
	if err != nil {
		return nil, err
	}
	return &types.MsgLiquidateResponse{Excess: excess.String()}, nil
}

func (k msgServer) ForceLiquidate(goCtx context.Context, msg *types.MsgForceLiquidate) (*types.MsgForceLiquidateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, err
	}
	payment, err := decimal.NewFromString(msg.Payment)
	if err != nil {
		return nil, err
	}
	pct, err := decimal.NewFromString(msg.PercentageToTake)
	if err != nil {
		return nil, err
	}
	taken, err := k.Keeper.ForceLiquidate(ctx, caller, msg.Parent, payment, pct, msg.AssertNonMarkable)
	if err != nil {
		return nil, err
	}
	return &types.MsgForceLiquidateResponse{CollateralTaken: taken.String()}, nil
}

func (k msgServer) ForceMint(goCtx context.Context, msg *types.MsgForceMint) (*types.MsgForceMintResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, err
	}
	payment, err := decimal.NewFromString(msg.Payment)
	if err != nil {
		return nil, err
	}
	pct, err := decimal.NewFromString(msg.PercentageToSupply)
	if err != nil {
		return nil, err
	}
	minted, returned, err := k.Keeper.ForceMint(ctx, caller, msg.Parent, msg.PaymentCollateral, payment, pct)
	if err != nil {
		return nil, err
	}
	return &types.MsgForceMintResponse{MintedStab: minted.String(), ReturnedCollateral: returned.String()}, nil
}

func (k msgServer) RetrieveLeftover(goCtx context.Context, msg *types.MsgRetrieveLeftover) (*types.MsgRetrieveLeftoverResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.RetrieveLeftover(ctx, owner, msg.CdpId); err != nil {
		return nil, err
	}
	return &types.MsgRetrieveLeftoverResponse{}, nil
}

func (k msgServer) BurnCdp(goCtx context.Context, msg *types.MsgBurnCdp) (*types.MsgBurnCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.BurnCdp(ctx, owner, msg.CdpId); err != nil {
		return nil, err
	}
	return &types.MsgBurnCdpResponse{}, nil
}

func (k msgServer) BurnMarker(goCtx context.Context, msg *types.MsgBurnMarker) (*types.MsgBurnMarkerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.BurnMarker(ctx, msg.MarkerId); err != nil {
		return nil, err
	}
	return &types.MsgBurnMarkerResponse{}, nil
}

func (k msgServer) BurnLiquidationReceipt(goCtx context.Context, msg *types.MsgBurnLiquidationReceipt) (*types.MsgBurnLiquidationReceiptResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.Keeper.BurnLiquidationReceipt(ctx, msg.ReceiptId); err != nil {
		return nil, err
	}
	return &types.MsgBurnLiquidationReceiptResponse{}, nil
}

func (k msgServer) AddCollateral(goCtx context.Context, msg *types.MsgAddCollateral) (*types.MsgAddCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	mcr, err := decimal.NewFromString(msg.Mcr)
	if err != nil {
		return nil, err
	}
	usdPrice, err := decimal.NewFromString(msg.UsdPrice)
	if err != nil {
		return nil, err
	}
	maxStabShare, err := decimal.NewFromString(msg.MaxStabShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.AddCollateral(ctx, msg.Denom, mcr, usdPrice, maxStabShare); err != nil {
		return nil, err
	}
	return &types.MsgAddCollateralResponse{}, nil
}

func (k msgServer) AddPoolCollateral(goCtx context.Context, msg *types.MsgAddPoolCollateral) (*types.MsgAddPoolCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	maxPoolShare, err := decimal.NewFromString(msg.MaxPoolShare)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.AddPoolCollateral(ctx, msg.Denom, msg.ParentDenom, msg.Kind, msg.RedemptionRef, maxPoolShare); err != nil {
		return nil, err
	}
	return &types.MsgAddPoolCollateralResponse{}, nil
}

func (k msgServer) ChangeCollateralPrice(goCtx context.Context, msg *types.MsgChangeCollateralPrice) (*types.MsgChangeCollateralPriceResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	usdPrice, err := decimal.NewFromString(msg.UsdPrice)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.ChangeCollateralPrice(ctx, msg.Denom, usdPrice); err != nil {
		return nil, err
	}
	return &types.MsgChangeCollateralPriceResponse{}, nil
}
