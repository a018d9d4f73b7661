package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/peg/types"
)

// Keeper of the peg controller's store.
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	memKey        storetypes.StoreKey
	bankKeeper    types.BankKeeper
	cdpKeeper     types.CdpKeeper
	oracleKeeper  types.OracleKeeper
	ammPoolKeeper types.AmmPoolKeeper
	refAsset      string
}

// NewKeeper creates a new peg Keeper instance. refAsset names the reference
// asset (e.g. the chain's native gas token) the oracle quotes against.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey, memKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	cdpKeeper types.CdpKeeper,
	oracleKeeper types.OracleKeeper,
	ammPoolKeeper types.AmmPoolKeeper,
	refAsset string,
) *Keeper {
	return &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		memKey:        memKey,
		bankKeeper:    bankKeeper,
		cdpKeeper:     cdpKeeper,
		oracleKeeper:  oracleKeeper,
		ammPoolKeeper: ammPoolKeeper,
		refAsset:      refAsset,
	}
}

// SetCdpKeeper binds the cdp engine late, for app wiring that builds the two
// keepers in opposite dependency order to break the cyclic reference.
func (k *Keeper) SetCdpKeeper(ck types.CdpKeeper) { k.cdpKeeper = ck }

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetParams returns the current peg controller parameters.
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

// SetParams sets the peg controller parameters.
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

// GetState returns the controller's current PID state.
func (k Keeper) GetState(ctx sdk.Context) types.PegState {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.StateKey)
	if bz == nil {
		return types.DefaultPegState()
	}
	var state types.PegState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.DefaultPegState()
	}
	return state
}

// SetState persists the controller's PID state.
func (k Keeper) SetState(ctx sdk.Context, state types.PegState) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}
	store.Set(types.StateKey, bz)
}

// GetInternalPrice returns the controller's current internal price,
// satisfying x/cdp/types.PegKeeper.
func (k Keeper) GetInternalPrice(ctx sdk.Context) decimal.Decimal {
	return k.GetState(ctx).InternalPrice
}
