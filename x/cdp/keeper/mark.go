package keeper

import (
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// clearMarkedState performs the Marked -> Healthy transition shared by
// partialCloseCdp and topUpCdp: the existing marker is stamped used and
// dequeued from markedCdps, and the cdp's status returns to Healthy. No new
// marker is issued here, unlike the Saved-marker-issuing paths inside
// mark/liquidate.
func (k Keeper) clearMarkedState(ctx sdk.Context, cdp *types.Cdp) {
	if cdp.Status != types.CdpStatusMarked {
		return
	}
	if marker, found := k.GetCdpMarker(ctx, cdp.MarkerId); found {
		marker.Used = true
		k.SetCdpMarker(ctx, marker)
		k.DequeueMarked(ctx, marker.MarkerPlacing)
	}
	cdp.Status = types.CdpStatusHealthy
	cdp.MarkerId = 0
}

// issueMarker mints a new CdpMarker record of the given type and, for a
// Marked-type marker, enqueues it in the global markedCdps queue and
// stamps the cdp with the marker's id.
func (k Keeper) issueMarker(ctx sdk.Context, cdp *types.Cdp, markType types.CdpMarkType) types.CdpMarker {
	markerID := k.NextMarkerID(ctx)
	marker := types.CdpMarker{
		Id:          markerID,
		MarkType:    markType,
		TimeMarked:  ctx.BlockTime(),
		MarkedCdpId: cdp.Id,
		Used:        false,
	}
	if markType == types.CdpMarkTypeMarked {
		marker.MarkerPlacing = k.NextMarkerPlacing(ctx)
		k.EnqueueMarked(ctx, marker.MarkerPlacing, cdp.Id)
		cdp.MarkerId = markerID
		cdp.Status = types.CdpStatusMarked
	}
	k.SetCdpMarker(ctx, marker)
	return marker
}

// MarkForLiquidation marks the Healthy cdp with the lowest stored CR for
// parentDenom, re-checking its true CR against the current pool-unit
// redemption value before committing to a mark.
func (k Keeper) MarkForLiquidation(ctx sdk.Context, parentDenom string) (types.CdpMarker, error) {
	cdpId, ok := k.FirstCrIndex(ctx, parentDenom)
	if !ok {
		return types.CdpMarker{}, types.ErrNoLoans
	}
	cdp, found := k.GetCdp(ctx, cdpId)
	if !found {
		return types.CdpMarker{}, types.ErrUnknownCdp
	}
	parent, found := k.GetCollateralInfo(ctx, parentDenom)
	if !found {
		return types.CdpMarker{}, types.ErrUnknownCollateral
	}
	if cdp.CollateralStabRatio.GTE(parent.Lcr) {
		return types.CdpMarker{}, types.ErrMarkNotEligible
	}

	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, cdp.CollateralAmount)
	if err != nil {
		return types.CdpMarker{}, err
	}
	trueCr := realAmount.Quo(cdp.MintedStab)

	k.RemoveCrIndex(ctx, parentDenom, cdp.CollateralStabRatio, cdpId)

	if trueCr.GT(parent.Lcr) {
		// The recomputed CR (after pool-unit revaluation) is healthy after
		// all: re-index at the true CR and issue a Saved marker instead of
		// marking. If the target bucket is full, fall through and mark the
		// cdp instead rather than aborting the operation.
		err := k.InsertCrIndex(ctx, parentDenom, trueCr, cdpId)
		if err == nil {
			cdp.CollateralStabRatio = trueCr
			k.SetCdp(ctx, cdp)
			marker := k.issueMarker(ctx, &cdp, types.CdpMarkTypeSaved)
			k.emitUpdateCdp(ctx, cdp)
			return marker, nil
		}
		if !errors.Is(err, types.ErrCRWindowFull) {
			return types.CdpMarker{}, err
		}
	}

	marker := k.issueMarker(ctx, &cdp, types.CdpMarkTypeMarked)
	cdp.CollateralStabRatio = trueCr
	k.SetCdp(ctx, cdp)
	k.emitUpdateCdp(ctx, cdp)
	k.Logger(ctx).Info("marked cdp for liquidation", "id", cdpId, "marker_id", marker.Id)
	return marker, nil
}
