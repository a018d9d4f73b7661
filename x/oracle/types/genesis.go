package types

// GenesisState defines the oracle module's genesis state.
type GenesisState struct {
	Params           Params            `json:"params" yaml:"params"`
	AggregatedPrices []AggregatedPrice `json:"aggregated_prices" yaml:"aggregated_prices"`
}

func (gs *GenesisState) ProtoMessage() {}
func (gs *GenesisState) Reset()        { *gs = GenesisState{} }
func (gs *GenesisState) String() string { return "oracle_genesis" }

func DefaultGenesisState() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
