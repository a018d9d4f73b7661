package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

type queryServer struct {
	Keeper
}

func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (k queryServer) Badge(goCtx context.Context, req *types.QueryBadgeRequest) (*types.QueryBadgeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	holding, found := k.GetBadge(ctx, req.Holder)
	if !found {
		return nil, types.ErrUnknownHolder
	}
	return &types.QueryBadgeResponse{Share: holding.Share.String()}, nil
}

func (k queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryParamsResponse{Params: k.GetParams(ctx)}, nil
}
