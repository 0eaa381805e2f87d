package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/alder-network/alder/cmd/rpc"
	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/store"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{Use: "alder", Short: "alder is a merkle commitment ledger daemon"}

	dataDir string
	asHex   bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the commitment ledger daemon",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit <value>",
	Short: "commit a value to a running node and print its index and the new root",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := client().Commit(argToBytes(args[0]))
		if err != nil {
			log.Fatal(err.Error())
		}
		printJSON(resp)
	},
}

var rootQueryCmd = &cobra.Command{
	Use:   "root",
	Short: "print the current merkle root and commitment count of a running node",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := client().Root()
		if err != nil {
			log.Fatal(err.Error())
		}
		printJSON(resp)
	},
}

var proofCmd = &cobra.Command{
	Use:   "proof <index>",
	Short: "print an inclusion proof for the commitment at the given index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, e := parseUint64(args[0])
		if e != nil {
			log.Fatal(e.Error())
		}
		resp, err := client().Proof(index)
		if err != nil {
			log.Fatal(err.Error())
		}
		printJSON(resp)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <proof.json>",
	Short: "verify a proof file (as printed by 'proof') against its root on a running node",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		valid, err := rpc.VerifyProofFile(client(), args[0])
		if err != nil {
			log.Fatal(err.Error())
		}
		printJSON(map[string]bool{"valid": valid})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "the directory holding the config file and database")
	commitCmd.Flags().BoolVar(&asHex, "hex", false, "interpret the value argument as a hexadecimal string")
	rootCmd.AddCommand(startCmd, commitCmd, rootQueryCmd, proofCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// Start runs the daemon until an exit signal is received
func Start() {
	c, l := InitializeDataDirectory(dataDir)
	db, err := store.New(c, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	rpc.NewServer(db, c, l).Start()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	sig := <-stop
	if err = db.Close(); err != nil {
		l.Error(err.Error())
	}
	l.Infof("Exit command %s received", sig)
	os.Exit(0)
}

// InitializeDataDirectory ensures the data directory and config file exist and returns
// the loaded config with a logger writing to the directory
func InitializeDataDirectory(dataDirPath string) (lib.Config, lib.LoggerI) {
	if dataDirPath == "" {
		dataDirPath = lib.DefaultDataDirPath()
	}
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		log.Fatal(err)
	}
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		c := lib.DefaultConfig()
		c.DataDirPath = dataDirPath
		if err = c.WriteToFile(configFilePath); err != nil {
			log.Fatal(err)
		}
	}
	c, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		log.Fatal(err)
	}
	c.DataDirPath = dataDirPath
	l := lib.NewLogger(lib.LoggerConfig{Level: c.GetLogLevel()}, dataDirPath)
	return c, l
}

// client builds an RPC client from the config in the data directory and waits for the node
func client() *rpc.Client {
	c, _ := InitializeDataDirectory(dataDir)
	cl := rpc.NewClient(c.RPCUrl, c.RPCPort, c.AdminPort)
	if err := cl.WaitForReady(3 * time.Second); err != nil {
		log.Fatal(err.Error())
	}
	return cl
}

// argToBytes decodes the value argument per the --hex flag
func argToBytes(arg string) []byte {
	if asHex {
		bz, err := lib.NewHexBytesFromString(arg)
		if err != nil {
			log.Fatal(err.Error())
		}
		return bz
	}
	return []byte(arg)
}

// parseUint64 converts a command line argument into an index
func parseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// printJSON pretty prints a response object to stdout
func printJSON(v any) {
	s, err := lib.MarshalJSONIndentString(v)
	if err != nil {
		log.Fatal(err.Error())
	}
	fmt.Println(s)
}
