package types

// GenesisState is the ammpool module's genesis state: module params, the
// pool's reserves/supply, and every outstanding LP position.
type GenesisState struct {
	Params      Params       `json:"params"`
	Pool        Pool         `json:"pool"`
	LPPositions []LPPosition `json:"lp_positions"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pool:   DefaultPool(),
	}
}

func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
