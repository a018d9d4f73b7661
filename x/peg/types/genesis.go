package types

// GenesisState defines the peg module's genesis state.
type GenesisState struct {
	Params Params   `json:"params" yaml:"params"`
	State  PegState `json:"state" yaml:"state"`
}

func (gs *GenesisState) ProtoMessage() {}
func (gs *GenesisState) Reset()        { *gs = GenesisState{} }
func (gs *GenesisState) String() string { return "peg_genesis" }

// DefaultGenesisState returns the default peg genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		State:  DefaultPegState(),
	}
}

// Validate performs basic genesis consistency checks.
func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
