package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/oracle/types"
)

type queryServer struct {
	Keeper
}

func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (k queryServer) AggregatedPrice(goCtx context.Context, req *types.QueryAggregatedPriceRequest) (*types.QueryAggregatedPriceResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	price, found := k.Keeper.GetAggregatedPrice(ctx, req.Asset)
	if !found {
		return nil, types.ErrUnknownAsset
	}
	return &types.QueryAggregatedPriceResponse{Price: types.AggregatedPrice{Asset: req.Asset, Price: price}}, nil
}

func (k queryServer) Prices(goCtx context.Context, req *types.QueryPricesRequest) (*types.QueryPricesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryPricesResponse{Feeds: k.Keeper.GetPrices(ctx)}, nil
}
