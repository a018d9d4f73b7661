package types

// GenesisState is the proxy module's genesis state: module params and the
// initial badge-holding registry (shares should sum to One() at genesis,
// though this is not enforced here since partial issuance is valid too).
type GenesisState struct {
	Params   Params         `json:"params"`
	Holdings []BadgeHolding `json:"holdings"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
