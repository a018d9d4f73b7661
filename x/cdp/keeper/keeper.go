package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// Keeper of the cdp store.
type Keeper struct {
	cdc            codec.BinaryCodec
	storeKey       storetypes.StoreKey
	memKey         storetypes.StoreKey
	bankKeeper     types.BankKeeper
	accountKeeper  types.AccountKeeper
	pegKeeper      types.PegKeeper
	oracleKeeper   types.OracleKeeper
	ammPoolKeeper  types.AmmPoolKeeper
	poolUnitSource types.PoolUnitSource
}

// NewKeeper creates a new cdp Keeper instance.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey,
	memKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	accountKeeper types.AccountKeeper,
	pegKeeper types.PegKeeper,
	oracleKeeper types.OracleKeeper,
	ammPoolKeeper types.AmmPoolKeeper,
	poolUnitSource types.PoolUnitSource,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		memKey:         memKey,
		bankKeeper:     bankKeeper,
		accountKeeper:  accountKeeper,
		pegKeeper:      pegKeeper,
		oracleKeeper:   oracleKeeper,
		ammPoolKeeper:  ammPoolKeeper,
		poolUnitSource: poolUnitSource,
	}
}

// SetPoolUnitSource sets the pool-unit redemption source, for late binding
// during app initialization.
func (k *Keeper) SetPoolUnitSource(src types.PoolUnitSource) {
	k.poolUnitSource = src
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetParams returns the current cdp module parameters.
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

// SetParams sets the cdp module parameters.
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

// nextID reads the counter at key, increments it, stores it back, and
// returns the incremented value, so the first issued id is 1.
func (k Keeper) nextID(ctx sdk.Context, counterKey []byte) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(counterKey)
	var id uint64
	if bz != nil {
		id = sdk.BigEndianToUint64(bz)
	}
	id++
	store.Set(counterKey, sdk.Uint64ToBigEndian(id))
	return id
}

func (k Keeper) NextCdpID(ctx sdk.Context) uint64    { return k.nextID(ctx, types.CdpCounterKey) }
func (k Keeper) NextMarkerID(ctx sdk.Context) uint64 { return k.nextID(ctx, types.MarkerCounterKey) }
func (k Keeper) NextReceiptID(ctx sdk.Context) uint64 {
	return k.nextID(ctx, types.ReceiptCounterKey)
}
