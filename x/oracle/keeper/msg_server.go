package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/oracle/types"
)

type msgServer struct {
	Keeper
}

func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (k msgServer) SubmitPrice(goCtx context.Context, msg *types.MsgSubmitPrice) (*types.MsgSubmitPriceResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	price, err := decimal.NewFromString(msg.Price)
	if err != nil {
		return nil, err
	}
	if err := k.Keeper.SubmitPrice(ctx, msg.Source, msg.Asset, price, msg.MarketId, msg.Nonce); err != nil {
		return nil, err
	}
	return &types.MsgSubmitPriceResponse{}, nil
}
