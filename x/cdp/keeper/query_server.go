package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of types.QueryServer, mirroring
// msg_server.go's NewMsgServerImpl convention.
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (k queryServer) Cdp(goCtx context.Context, req *types.QueryCdpRequest) (*types.QueryCdpResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	cdp, found := k.Keeper.GetCdp(ctx, req.CdpId)
	if !found {
		return nil, types.ErrUnknownCdp
	}
	return &types.QueryCdpResponse{Cdp: cdp}, nil
}

func (k queryServer) CollateralInfo(goCtx context.Context, req *types.QueryCollateralInfoRequest) (*types.QueryCollateralInfoResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	info, found := k.Keeper.GetCollateralInfo(ctx, req.Denom)
	if !found {
		return nil, types.ErrUnknownCollateral
	}
	return &types.QueryCollateralInfoResponse{CollateralInfo: info}, nil
}

func (k queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryParamsResponse{Params: k.Keeper.GetParams(ctx)}, nil
}
