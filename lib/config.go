package lib

import (
	"encoding/json"
	"os"
	"strings"
)

/* This file implements logic for 'user controlled' configurations of each module of the node */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath = "config.json" // the file path for the node configuration
)

// Config is the structure of the user configuration options for an Alder node
type Config struct {
	MainConfig   // main options spanning over all modules
	RPCConfig    // rpc API options
	StoreConfig  // persistence options
	MerkleConfig // merkle tree options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:   DefaultMainConfig(),
		RPCConfig:    DefaultRPCConfig(),
		StoreConfig:  DefaultStoreConfig(),
		MerkleConfig: DefaultMerkleConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info", // everything but debug is the default
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort   string `json:"rpcPort"`   // the port where the rpc server is hosted
	AdminPort string `json:"adminPort"` // the port where the admin rpc server is hosted
	RPCUrl    string `json:"rpcURL"`    // the url where the rpc server is hosted
	TimeoutS  int    `json:"timeoutS"`  // the rpc request timeout in seconds
}

// DefaultRPCConfig() sets rpc url to localhost and sets rpc and admin ports to [40001-40002]
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:   "40001",
		AdminPort: "40002",
		RPCUrl:    "http://localhost",
		TimeoutS:  3,
	}
}

// STORE CONFIG BELOW

type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // the designated folder for the database and config files
	DBName      string `json:"dbName"`      // the name of the commitment database
	InMemory    bool   `json:"inMemory"`    // non-persistent database, used mostly for testing
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(), // use the default data dir path
		DBName:      "alder",              // 'alder' database name
		InMemory:    false,                // persist to disk, not memory
	}
}

// MERKLE CONFIG BELOW

type MerkleConfig struct {
	HashAlgorithm string `json:"hashAlgorithm"` // the digest algorithm for leaves and internal nodes
	OddNodePolicy string `json:"oddNodePolicy"` // the named pairing policy for an odd-length layer
}

// DefaultMerkleConfig() selects sha256 digests and the duplicate-last odd node policy
func DefaultMerkleConfig() MerkleConfig {
	return MerkleConfig{
		HashAlgorithm: "sha256",
		OddNodePolicy: "duplicate-last",
	}
}

// WriteToFile() saves the Config object to a file as indented json
func (c Config) WriteToFile(filepath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	// if an error occurred during the conversion
	if err != nil {
		// exit with error
		return err
	}
	// write the config.json file to the data directory
	return os.WriteFile(filepath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filepath string) (Config, error) {
	// read the file into bytes using
	fileBytes, err := os.ReadFile(filepath)
	// if an error occurred
	if err != nil {
		// exit with error
		return Config{}, err
	}
	// define the default config to fill in any blanks in the file
	c := DefaultConfig()
	// populate the default config with the file bytes
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		// exit with error
		return Config{}, err
	}
	// exit
	return c, nil
}

// DefaultTestConfig() returns an in-memory configuration used by unit tests
func DefaultTestConfig() Config {
	c := DefaultConfig()
	c.StoreConfig.InMemory = true
	return c
}
