package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// MsgUpdate is the unauthenticated tick: pull collateral prices from
// x/oracle into x/cdp and advance x/peg's controller.
type MsgUpdate struct {
	Caller string `json:"caller"`
}

type MsgUpdateResponse struct {
	Ticked bool `json:"ticked"`
}

// Admin messages below all carry Signers, the set of badge holders whose
// combined Share must meet Params.QuorumThreshold before the wrapped
// action is forwarded to the engine.

type MsgChangeCollateralPrice struct {
	Signers  []string `json:"signers"`
	Denom    string   `json:"denom"`
	UsdPrice string   `json:"usd_price"`
}
type MsgChangeCollateralPriceResponse struct{}

type MsgAddCollateral struct {
	Signers      []string `json:"signers"`
	Denom        string   `json:"denom"`
	Mcr          string   `json:"mcr"`
	UsdPrice     string   `json:"usd_price"`
	MaxStabShare string   `json:"max_stab_share"`
}
type MsgAddCollateralResponse struct{}

type MsgAddPoolCollateral struct {
	Signers       []string              `json:"signers"`
	Denom         string                `json:"denom"`
	ParentDenom   string                `json:"parent_denom"`
	Kind          cdptypes.PoolUnitKind `json:"kind"`
	RedemptionRef string                `json:"redemption_ref"`
	MaxPoolShare  string                `json:"max_pool_share"`
}
type MsgAddPoolCollateralResponse struct{}

type MsgEditCollateral struct {
	Signers      []string `json:"signers"`
	Denom        string   `json:"denom"`
	Mcr          string   `json:"mcr"`
	Accepted     bool     `json:"accepted"`
	MaxStabShare string   `json:"max_stab_share"`
}
type MsgEditCollateralResponse struct{}

type MsgEditPoolCollateral struct {
	Signers      []string `json:"signers"`
	Denom        string   `json:"denom"`
	Accepted     bool     `json:"accepted"`
	MaxPoolShare string   `json:"max_pool_share"`
}
type MsgEditPoolCollateralResponse struct{}

type MsgSetStops struct {
	Signers               []string `json:"signers"`
	LiquidationsStopped   bool     `json:"liquidations_stopped"`
	OpeningsStopped       bool     `json:"openings_stopped"`
	ClosingsStopped       bool     `json:"closings_stopped"`
	ForceMintStopped      bool     `json:"force_mint_stopped"`
	ForceLiquidateStopped bool     `json:"force_liquidate_stopped"`
}
type MsgSetStopsResponse struct{}

type MsgSetDelays struct {
	Signers                 []string `json:"signers"`
	LiquidationDelayMinutes uint64   `json:"liquidation_delay_minutes"`
	UnmarkedDelayMinutes    uint64   `json:"unmarked_delay_minutes"`
}
type MsgSetDelaysResponse struct{}

type MsgSetMaxVectorLength struct {
	Signers         []string `json:"signers"`
	MaxVectorLength uint64   `json:"max_vector_length"`
}
type MsgSetMaxVectorLengthResponse struct{}

type MsgSetMinimumMint struct {
	Signers     []string `json:"signers"`
	MinimumMint string   `json:"minimum_mint"`
}
type MsgSetMinimumMintResponse struct{}

type MsgSetFines struct {
	Signers                   []string `json:"signers"`
	LiquidatorFineBasisPoints uint64   `json:"liquidator_fine_basis_points"`
	ProtocolFineBasisPoints   uint64   `json:"protocol_fine_basis_points"`
}
type MsgSetFinesResponse struct{}

type MsgSetForceMintMultiplier struct {
	Signers                          []string `json:"signers"`
	ForceMintCrMultiplierBasisPoints uint64   `json:"force_mint_cr_multiplier_basis_points"`
}
type MsgSetForceMintMultiplierResponse struct{}

type MsgSetPegKpKi struct {
	Signers []string `json:"signers"`
	Kp      string   `json:"kp"`
	Ki      string   `json:"ki"`
}
type MsgSetPegKpKiResponse struct{}

type MsgSetPegMinMaxInterest struct {
	Signers []string `json:"signers"`
	Min     string   `json:"min"`
	Max     string   `json:"max"`
}
type MsgSetPegMinMaxInterestResponse struct{}

type MsgSetPegAllowedDeviation struct {
	Signers          []string `json:"signers"`
	AllowedDeviation string   `json:"allowed_deviation"`
}
type MsgSetPegAllowedDeviationResponse struct{}

type MsgSetPegPriceError struct {
	Signers          []string `json:"signers"`
	MaxPriceError    string   `json:"max_price_error"`
	PriceErrorOffset string   `json:"price_error_offset"`
}
type MsgSetPegPriceErrorResponse struct{}

type MsgSetPegUpdateDelays struct {
	Signers            []string `json:"signers"`
	UpdateDelayMinutes uint64   `json:"update_delay_minutes"`
}
type MsgSetPegUpdateDelaysResponse struct{}

type MsgSetPegNumberOfPricesCached struct {
	Signers              []string `json:"signers"`
	NumberOfCachedPrices uint64   `json:"number_of_cached_prices"`
}
type MsgSetPegNumberOfPricesCachedResponse struct{}

type MsgSetPegRewardPerSecond struct {
	Signers        []string `json:"signers"`
	RewardPerSecond string  `json:"reward_per_second"`
}
type MsgSetPegRewardPerSecondResponse struct{}

// MsgGrantBadge issues or updates a holder's badge share. Gated by quorum
// like every other admin action, except at genesis where Holdings is set
// directly.
type MsgGrantBadge struct {
	Signers []string `json:"signers"`
	Holder  string   `json:"holder"`
	Share   string   `json:"share"`
}
type MsgGrantBadgeResponse struct{}

// ValidateBasic implementations reject an empty signer list and malformed
// addresses before the message ever reaches the keeper. Only
// MsgChangeCollateralPrice and MsgGrantBadge also parse their amount here;
// the other messages' decimal fields are parsed by the msg server.

func (msg MsgUpdate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func validateSigners(signers []string) error {
	if len(signers) == 0 {
		return ErrInsufficientCapability
	}
	for _, s := range signers {
		if _, err := sdk.AccAddressFromBech32(s); err != nil {
			return ErrNotAuthorized
		}
	}
	return nil
}

func (msg MsgChangeCollateralPrice) ValidateBasic() error {
	if err := validateSigners(msg.Signers); err != nil {
		return err
	}
	_, err := decimal.NewFromString(msg.UsdPrice)
	return err
}

func (msg MsgAddCollateral) ValidateBasic() error {
	return validateSigners(msg.Signers)
}

func (msg MsgAddPoolCollateral) ValidateBasic() error {
	return validateSigners(msg.Signers)
}

func (msg MsgEditCollateral) ValidateBasic() error {
	return validateSigners(msg.Signers)
}

func (msg MsgEditPoolCollateral) ValidateBasic() error {
	return validateSigners(msg.Signers)
}

func (msg MsgSetStops) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetDelays) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetMaxVectorLength) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetMinimumMint) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetFines) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetForceMintMultiplier) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegKpKi) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegMinMaxInterest) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegAllowedDeviation) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegPriceError) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegUpdateDelays) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegNumberOfPricesCached) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgSetPegRewardPerSecond) ValidateBasic() error { return validateSigners(msg.Signers) }

func (msg MsgGrantBadge) ValidateBasic() error {
	if err := validateSigners(msg.Signers); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return ErrNotAuthorized
	}
	share, err := decimal.NewFromString(msg.Share)
	if err != nil {
		return err
	}
	if share.IsNegative() || share.GT(decimal.One()) {
		return ErrInvalidShare
	}
	return nil
}
