package app

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/codec/types"
	nodeservice "github.com/cosmos/cosmos-sdk/client/grpc/node"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/server/api"
	"github.com/cosmos/cosmos-sdk/server/config"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/auth/ante"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/x/bank"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/cosmos-sdk/x/consensus"
	consensusparamkeeper "github.com/cosmos/cosmos-sdk/x/consensus/keeper"
	consensusparamtypes "github.com/cosmos/cosmos-sdk/x/consensus/types"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	genutiltypes "github.com/cosmos/cosmos-sdk/x/genutil/types"
	"github.com/cosmos/cosmos-sdk/x/staking"
	stakingkeeper "github.com/cosmos/cosmos-sdk/x/staking/keeper"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	abci "github.com/cometbft/cometbft/v2/abci/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/gogoproto/proto"
	txsigning "cosmossdk.io/x/tx/signing"

	ammpoolmodule "github.com/stabilis-labs/stab-protocol/x/ammpool"
	ammpoolkeeper "github.com/stabilis-labs/stab-protocol/x/ammpool/keeper"
	ammpooltypes "github.com/stabilis-labs/stab-protocol/x/ammpool/types"

	cdpmodule "github.com/stabilis-labs/stab-protocol/x/cdp"
	cdpkeeper "github.com/stabilis-labs/stab-protocol/x/cdp/keeper"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"

	oraclemodule "github.com/stabilis-labs/stab-protocol/x/oracle"
	oraclekeeper "github.com/stabilis-labs/stab-protocol/x/oracle/keeper"
	oracletypes "github.com/stabilis-labs/stab-protocol/x/oracle/types"

	pegmodule "github.com/stabilis-labs/stab-protocol/x/peg"
	pegkeeper "github.com/stabilis-labs/stab-protocol/x/peg/keeper"
	pegtypes "github.com/stabilis-labs/stab-protocol/x/peg/types"

	proxymodule "github.com/stabilis-labs/stab-protocol/x/proxy"
	proxykeeper "github.com/stabilis-labs/stab-protocol/x/proxy/keeper"
	proxytypes "github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

const (
	Name = "stab"

	Bech32PrefixAccAddr  = "stab"
	Bech32PrefixAccPub   = "stabpub"
	Bech32PrefixValAddr  = "stabvaloper"
	Bech32PrefixValPub   = "stabvaloperpub"
	Bech32PrefixConsAddr = "stabvalcons"
	Bech32PrefixConsPub  = "stabvalconspub"

	Bech32PrefixTxHash    = "stabtx"
	Bech32PrefixBlockHash = "stabblock"

	// refAsset is the chain's native gas/staking denom, quoted against STAB
	// by the oracle and consumed by x/peg's controller.
	refAsset = "ustake"
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// module account permissions
	maccPerms = map[string][]string{
		authtypes.FeeCollectorName:     nil,
		stakingtypes.BondedPoolName:    {authtypes.Burner, authtypes.Staking},
		stakingtypes.NotBondedPoolName: {authtypes.Burner, authtypes.Staking},
		cdptypes.ModuleName:            {authtypes.Minter, authtypes.Burner},
		pegtypes.ModuleName:            {authtypes.Minter, authtypes.Burner},
		ammpooltypes.ModuleName:        nil,
	}
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, "."+Name)
}

// StabApp extends ABCI application for the STAB protocol.
type StabApp struct {
	*baseapp.BaseApp

	cdc               *codec.LegacyAmino
	appCodec          codec.Codec
	txConfig          client.TxConfig
	interfaceRegistry types.InterfaceRegistry

	AccountKeeper         authkeeper.AccountKeeper
	BankKeeper            bankkeeper.Keeper
	StakingKeeper         *stakingkeeper.Keeper
	ConsensusParamsKeeper consensusparamkeeper.Keeper

	CdpKeeper    *cdpkeeper.Keeper
	PegKeeper    *pegkeeper.Keeper
	OracleKeeper *oraclekeeper.Keeper
	AmmPoolKeeper *ammpoolkeeper.Keeper
	ProxyKeeper  *proxykeeper.Keeper

	MM           *module.Manager
	BasicManager module.BasicManager
	configurator module.Configurator
}

// NewStabApp returns a reference to an initialized StabApp.
func NewStabApp(
	logger log.Logger,
	db dbm.DB,
	traceStore io.Writer,
	loadLatest bool,
	appOpts servertypes.AppOptions,
	baseAppOptions ...func(*baseapp.BaseApp),
) *StabApp {
	addressCodec := address.NewBech32Codec(Bech32PrefixAccAddr)
	validatorAddressCodec := address.NewBech32Codec(Bech32PrefixValAddr)

	signingOptions := txsigning.Options{
		FileResolver:          proto.HybridResolver,
		AddressCodec:          addressCodec,
		ValidatorAddressCodec: validatorAddressCodec,
	}
	interfaceRegistry, err := types.NewInterfaceRegistryWithOptions(types.InterfaceRegistryOptions{
		ProtoFiles:     proto.HybridResolver,
		SigningOptions: signingOptions,
	})
	if err != nil {
		panic(err)
	}

	appCodec := codec.NewProtoCodec(interfaceRegistry)
	legacyAmino := codec.NewLegacyAmino()

	signingContext, err := txsigning.NewContext(signingOptions)
	if err != nil {
		panic(err)
	}

	txConfig, err := authtx.NewTxConfigWithOptions(appCodec, authtx.ConfigOptions{
		EnabledSignModes: authtx.DefaultSignModes,
		SigningContext:   signingContext,
	})
	if err != nil {
		panic(err)
	}

	std.RegisterLegacyAminoCodec(legacyAmino)
	std.RegisterInterfaces(interfaceRegistry)

	basicManager := module.NewBasicManager(
		auth.AppModuleBasic{},
		genutil.NewAppModuleBasic(nil),
		bank.AppModuleBasic{},
		staking.AppModuleBasic{},
		consensus.AppModuleBasic{},
		cdpmodule.AppModuleBasic{},
		pegmodule.AppModuleBasic{},
		proxymodule.AppModuleBasic{},
		oraclemodule.AppModuleBasic{},
		ammpoolmodule.AppModuleBasic{},
	)

	basicManager.RegisterInterfaces(interfaceRegistry)

	authtypes.RegisterInterfaces(interfaceRegistry)
	banktypes.RegisterInterfaces(interfaceRegistry)
	stakingtypes.RegisterInterfaces(interfaceRegistry)

	interfaceRegistry.RegisterImplementations((*cryptotypes.PubKey)(nil),
		&ed25519.PubKey{},
		&secp256k1.PubKey{},
	)

	interfaceRegistry.RegisterImplementations((*authtypes.AccountI)(nil),
		&authtypes.BaseAccount{},
		&authtypes.ModuleAccount{},
	)

	bApp := baseapp.NewBaseApp(Name, logger, db, txConfig.TxDecoder(), baseAppOptions...)
	bApp.SetCommitMultiStoreTracer(traceStore)
	bApp.SetVersion(version.Version)
	bApp.SetInterfaceRegistry(interfaceRegistry)
	bApp.SetTxEncoder(txConfig.TxEncoder())

	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		stakingtypes.StoreKey,
		consensusparamtypes.StoreKey,
		cdptypes.StoreKey,
		pegtypes.StoreKey,
		proxytypes.StoreKey,
		oracletypes.StoreKey,
		ammpooltypes.StoreKey,
	)

	memKeys := storetypes.NewMemoryStoreKeys(
		cdptypes.MemStoreKey,
		pegtypes.MemStoreKey,
		proxytypes.MemStoreKey,
		oracletypes.MemStoreKey,
		ammpooltypes.MemStoreKey,
	)

	app := &StabApp{
		BaseApp:           bApp,
		cdc:               legacyAmino,
		appCodec:          appCodec,
		txConfig:          txConfig,
		interfaceRegistry: interfaceRegistry,
	}

	app.ConsensusParamsKeeper = consensusparamkeeper.NewKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[consensusparamtypes.StoreKey]),
		authtypes.NewModuleAddress("gov").String(),
		runtime.EventService{},
	)
	bApp.SetParamStore(app.ConsensusParamsKeeper.ParamsStore)

	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addressCodec,
		Bech32PrefixAccAddr,
		authtypes.NewModuleAddress("gov").String(),
	)

	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AccountKeeper,
		map[string]bool{},
		authtypes.NewModuleAddress("gov").String(),
		logger,
	)

	app.StakingKeeper = stakingkeeper.NewKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[stakingtypes.StoreKey]),
		app.AccountKeeper,
		app.BankKeeper,
		authtypes.NewModuleAddress("gov").String(),
		validatorAddressCodec,
		address.NewBech32Codec(Bech32PrefixConsAddr),
	)

	// x/oracle and x/ammpool have no dependency on the cyclic cdp/peg pair
	// and are constructed first.
	app.OracleKeeper = oraclekeeper.NewKeeper(
		appCodec,
		keys[oracletypes.StoreKey],
		memKeys[oracletypes.MemStoreKey],
	)

	app.AmmPoolKeeper = ammpoolkeeper.NewKeeper(
		appCodec,
		keys[ammpooltypes.StoreKey],
		memKeys[ammpooltypes.MemStoreKey],
		app.BankKeeper,
	)

	// x/peg and x/cdp reference each other (peg recomputes LCRs through the
	// cdp keeper; cdp reads the controller's internal price through the peg
	// keeper), so peg is built first with a nil CdpKeeper and wired in after
	// cdp exists.
	app.PegKeeper = pegkeeper.NewKeeper(
		appCodec,
		keys[pegtypes.StoreKey],
		memKeys[pegtypes.MemStoreKey],
		app.BankKeeper,
		nil,
		app.OracleKeeper,
		app.AmmPoolKeeper,
		refAsset,
	)

	app.CdpKeeper = cdpkeeper.NewKeeper(
		appCodec,
		keys[cdptypes.StoreKey],
		memKeys[cdptypes.MemStoreKey],
		app.BankKeeper,
		app.AccountKeeper,
		app.PegKeeper,
		app.OracleKeeper,
		app.AmmPoolKeeper,
		nil,
	)

	app.PegKeeper.SetCdpKeeper(app.CdpKeeper)

	app.CdpKeeper.SetPoolUnitSource(NewPoolUnitSourceAdapter(app.StakingKeeper, app.AmmPoolKeeper))

	app.ProxyKeeper = proxykeeper.NewKeeper(
		appCodec,
		keys[proxytypes.StoreKey],
		memKeys[proxytypes.MemStoreKey],
		app.CdpKeeper,
		app.PegKeeper,
		app.OracleKeeper,
	)

	app.MM = module.NewManager(
		genutil.NewAppModule(
			app.AccountKeeper,
			app.StakingKeeper,
			app,
			txConfig,
		),
		auth.NewAppModule(appCodec, app.AccountKeeper, nil, nil),
		bank.NewAppModule(appCodec, app.BankKeeper, app.AccountKeeper, nil),
		staking.NewAppModule(appCodec, app.StakingKeeper, app.AccountKeeper, app.BankKeeper, nil),
		consensus.NewAppModule(appCodec, app.ConsensusParamsKeeper),
		oraclemodule.NewAppModule(*app.OracleKeeper),
		ammpoolmodule.NewAppModule(*app.AmmPoolKeeper),
		pegmodule.NewAppModule(*app.PegKeeper),
		cdpmodule.NewAppModule(*app.CdpKeeper),
		proxymodule.NewAppModule(*app.ProxyKeeper),
	)

	app.MM.SetOrderBeginBlockers(
		stakingtypes.ModuleName,
		oracletypes.ModuleName,
		ammpooltypes.ModuleName,
		pegtypes.ModuleName,
		cdptypes.ModuleName,
		proxytypes.ModuleName,
	)

	app.MM.SetOrderEndBlockers(
		stakingtypes.ModuleName,
		oracletypes.ModuleName,
		ammpooltypes.ModuleName,
		pegtypes.ModuleName,
		cdptypes.ModuleName,
		proxytypes.ModuleName,
	)

	genesisModuleOrder := []string{
		authtypes.ModuleName,
		banktypes.ModuleName,
		stakingtypes.ModuleName,
		genutiltypes.ModuleName,
		consensusparamtypes.ModuleName,
		oracletypes.ModuleName,
		ammpooltypes.ModuleName,
		pegtypes.ModuleName,
		cdptypes.ModuleName,
		proxytypes.ModuleName,
	}

	app.MM.SetOrderInitGenesis(genesisModuleOrder...)
	app.MM.SetOrderExportGenesis(genesisModuleOrder...)

	app.MountKVStores(keys)
	app.MountMemoryStores(memKeys)

	app.SetInitChainer(app.InitChainer)
	app.SetBeginBlocker(app.BeginBlocker)
	app.SetEndBlocker(app.EndBlocker)

	anteHandler, err := NewAnteHandler(AnteHandlerOptions{
		AccountKeeper:   app.AccountKeeper,
		BankKeeper:      app.BankKeeper,
		SignModeHandler: txConfig.SignModeHandler(),
	})
	if err != nil {
		panic(err)
	}
	app.SetAnteHandler(anteHandler)

	app.configurator = module.NewConfigurator(app.appCodec, app.MsgServiceRouter(), app.GRPCQueryRouter())
	app.MM.RegisterServices(app.configurator)

	app.BasicManager = basicManager

	if loadLatest {
		if err := app.LoadLatestVersion(); err != nil {
			panic(err)
		}
	}

	return app
}

// Name returns the name of the App
func (app *StabApp) Name() string { return app.BaseApp.Name() }

// BeginBlocker application updates every begin block
func (app *StabApp) BeginBlocker(ctx sdk.Context) (sdk.BeginBlock, error) {
	return app.MM.BeginBlock(ctx)
}

// EndBlocker application updates every end block
func (app *StabApp) EndBlocker(ctx sdk.Context) (sdk.EndBlock, error) {
	return app.MM.EndBlock(ctx)
}

// InitChainer application update at chain initialization
func (app *StabApp) InitChainer(ctx sdk.Context, req *abci.InitChainRequest) (*abci.InitChainResponse, error) {
	var genesisState GenesisState
	if err := json.Unmarshal(req.AppStateBytes, &genesisState); err != nil {
		panic(err)
	}
	return app.MM.InitGenesis(ctx, app.appCodec, genesisState)
}

// LoadHeight loads a particular height
func (app *StabApp) LoadHeight(height int64) error {
	return app.LoadVersion(height)
}

// ExportAppStateAndValidators exports the state of the application for a
// genesis file.
func (app *StabApp) ExportAppStateAndValidators(
	forZeroHeight bool, jailAllowedAddrs, modulesToExport []string,
) (servertypes.ExportedApp, error) {
	ctx := app.NewContext(true)
	height := app.LastBlockHeight() + 1
	if forZeroHeight {
		height = 0
	}

	genState, err := app.MM.ExportGenesis(ctx, app.appCodec)
	if err != nil {
		return servertypes.ExportedApp{}, err
	}

	appState, err := json.MarshalIndent(genState, "", "  ")
	if err != nil {
		return servertypes.ExportedApp{}, err
	}

	validators, err := staking.WriteValidators(ctx, app.StakingKeeper)
	return servertypes.ExportedApp{
		AppState:        appState,
		Validators:      validators,
		Height:          height,
		ConsensusParams: app.BaseApp.GetConsensusParams(ctx),
	}, err
}

// RegisterAPIRoutes registers all application module routes with the
// provided API server.
func (app *StabApp) RegisterAPIRoutes(apiSvr *api.Server, apiConfig config.APIConfig) {
	clientCtx := apiSvr.ClientCtx.
		WithInterfaceRegistry(app.interfaceRegistry).
		WithCodec(app.appCodec).
		WithTxConfig(app.txConfig)

	app.BasicManager.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)
	authtx.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)
}

// RegisterNodeService implements the Application.RegisterNodeService method.
func (app *StabApp) RegisterNodeService(clientCtx client.Context, cfg config.Config) {
	nodeservice.RegisterNodeService(clientCtx, app.GRPCQueryRouter(), cfg)
}

// RegisterTendermintService implements the Application.RegisterTendermintService method.
func (app *StabApp) RegisterTendermintService(clientCtx client.Context) {}

// RegisterTxService implements the Application.RegisterTxService method.
func (app *StabApp) RegisterTxService(clientCtx client.Context) {
	authtx.RegisterTxService(app.BaseApp.GRPCQueryRouter(), clientCtx, app.BaseApp.Simulate, app.interfaceRegistry)
}

// GetTxConfig implements the TestingApp interface.
func (app *StabApp) GetTxConfig() client.TxConfig {
	return app.txConfig
}

// DefaultGenesis returns a default genesis from the registered AppModuleBasic's.
func (app *StabApp) DefaultGenesis() map[string]json.RawMessage {
	return app.BasicManager.DefaultGenesis(app.appCodec)
}

// Configurator implements the TestingApp interface.
func (app *StabApp) Configurator() module.Configurator {
	return app.configurator
}

// GenesisState is the genesis state of the blockchain, a map of raw json
// messages keyed by module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default state for the application.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	return GenesisState{}
}

// MakeEncodingConfig creates an EncodingConfig for the stab app.
func MakeEncodingConfig() EncodingConfig {
	return MakeTestEncodingConfig()
}

// ModuleBasics defines the module BasicManager in charge of setting up
// basic, non-dependant module elements such as codec registration and
// genesis verification.
var ModuleBasics = module.NewBasicManager(
	auth.AppModuleBasic{},
	genutil.NewAppModuleBasic(nil),
	bank.AppModuleBasic{},
	staking.AppModuleBasic{},
	consensus.AppModuleBasic{},
	cdpmodule.AppModuleBasic{},
	pegmodule.AppModuleBasic{},
	proxymodule.AppModuleBasic{},
	oraclemodule.AppModuleBasic{},
	ammpoolmodule.AppModuleBasic{},
)

// AnteHandlerOptions are the options required for constructing a default
// SDK AnteHandler.
type AnteHandlerOptions struct {
	AccountKeeper   authkeeper.AccountKeeper
	BankKeeper      bankkeeper.Keeper
	SignModeHandler *txsigning.HandlerMap
}

// NewAnteHandler returns an AnteHandler that checks and increments sequence
// numbers, checks signatures & account numbers, and deducts fees from the
// first signer.
func NewAnteHandler(options AnteHandlerOptions) (sdk.AnteHandler, error) {
	return sdk.ChainAnteDecorators(
		ante.NewSetUpContextDecorator(),
		ante.NewExtensionOptionsDecorator(nil),
		ante.NewValidateBasicDecorator(),
		ante.NewTxTimeoutHeightDecorator(),
		ante.NewValidateMemoDecorator(options.AccountKeeper),
		ante.NewConsumeGasForTxSizeDecorator(options.AccountKeeper),
		ante.NewDeductFeeDecorator(
			options.AccountKeeper,
			options.BankKeeper,
			nil, // feegrant keeper
			nil, // txFeeChecker
		),
		ante.NewSetPubKeyDecorator(options.AccountKeeper),
		ante.NewValidateSigCountDecorator(options.AccountKeeper),
		ante.NewSigGasConsumeDecorator(options.AccountKeeper, ante.DefaultSigVerificationGasConsumer),
		ante.NewSigVerificationDecorator(options.AccountKeeper, options.SignModeHandler),
		ante.NewIncrementSequenceDecorator(options.AccountKeeper),
	), nil
}

