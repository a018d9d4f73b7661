package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

// Keeper of the proxy store. It holds the badge registry and forwards
// authenticated calls into the
// cdp, peg, and oracle keepers.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	memKey   storetypes.StoreKey

	cdpKeeper    types.CdpKeeper
	pegKeeper    types.PegKeeper
	oracleKeeper types.OracleKeeper
}

func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey, memKey storetypes.StoreKey,
	cdpKeeper types.CdpKeeper,
	pegKeeper types.PegKeeper,
	oracleKeeper types.OracleKeeper,
) *Keeper {
	return &Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		memKey:       memKey,
		cdpKeeper:    cdpKeeper,
		pegKeeper:    pegKeeper,
		oracleKeeper: oracleKeeper,
	}
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

func (k Keeper) GetBadge(ctx sdk.Context, holder string) (types.BadgeHolding, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetBadgeKey(holder))
	if bz == nil {
		return types.BadgeHolding{}, false
	}
	var holding types.BadgeHolding
	if err := json.Unmarshal(bz, &holding); err != nil {
		return types.BadgeHolding{}, false
	}
	return holding, true
}

func (k Keeper) SetBadge(ctx sdk.Context, holding types.BadgeHolding) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(holding)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetBadgeKey(holding.Holder), bz)
}

// IterateBadges walks every badge holding, for genesis export.
func (k Keeper) IterateBadges(ctx sdk.Context, fn func(types.BadgeHolding) bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.BadgePrefix)
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var holding types.BadgeHolding
		if err := json.Unmarshal(iter.Value(), &holding); err != nil {
			continue
		}
		if !fn(holding) {
			return
		}
	}
}

// HasQuorum sums the Share of every address in signers and reports whether
// it meets Params.QuorumThreshold. Unknown addresses contribute zero rather
// than failing outright, so a caller padding the signer list with a
// stranger doesn't help or hurt them.
func (k Keeper) HasQuorum(ctx sdk.Context, signers []string) bool {
	threshold := k.GetParams(ctx).QuorumThreshold
	sum := decimal.Zero()
	seen := make(map[string]bool, len(signers))
	for _, s := range signers {
		if seen[s] {
			continue
		}
		seen[s] = true
		holding, found := k.GetBadge(ctx, s)
		if !found {
			continue
		}
		sum = sum.Add(holding.Share)
	}
	return sum.GTE(threshold)
}
