package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/ammpool/types"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// Keeper of the ammpool store.
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	memKey     storetypes.StoreKey
	bankKeeper types.BankKeeper
}

func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey, memKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
) *Keeper {
	return &Keeper{cdc: cdc, storeKey: storeKey, memKey: memKey, bankKeeper: bankKeeper}
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}
	store.Set(types.ParamsKey, bz)
	return nil
}

func (k Keeper) GetPool(ctx sdk.Context) types.Pool {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.PoolKey)
	if bz == nil {
		return types.DefaultPool()
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.DefaultPool()
	}
	return pool
}

func (k Keeper) SetPool(ctx sdk.Context, pool types.Pool) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(pool)
	if err != nil {
		panic(err)
	}
	store.Set(types.PoolKey, bz)
}

// stabDenom is the cdp engine's stablecoin denom; the pool trades it
// against Params.QuoteDenom.
const stabDenom = cdptypes.StabDenom
