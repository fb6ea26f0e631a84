package commands

import (
	"fmt"
	"os"
	"path"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/spf13/cobra"
)

var (
	privKeyFile string
	pubKeyFile  string
	mnemonic    string
	newMnemonic bool
	keyIndex    uint32
)

// NewKeygenCmd produces a KeygenCmd which create a key pair
func NewKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen",
		Short:   "Create new key pair",
		PreRunE: loadConfig,
		RunE:    keygen,
	}

	AddKeygenFlags(cmd)

	return cmd
}

//AddKeygenFlags adds flags to the keygen command
func AddKeygenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&privKeyFile, "priv", "", "File where the secret seed will be written (default [datadir]/priv_key)")
	cmd.Flags().StringVar(&pubKeyFile, "pub", "", "File where the account address will be written (default [datadir]/key.pub)")
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "Derive the key from this BIP-39 mnemonic instead of generating a random one")
	cmd.Flags().BoolVar(&newMnemonic, "new-mnemonic", false, "Generate a new 24 word mnemonic and derive the key from it")
	cmd.Flags().Uint32Var(&keyIndex, "index", 0, "Account index used with --mnemonic or --new-mnemonic")
}

func keygen(cmd *cobra.Command, args []string) error {
	if privKeyFile == "" {
		privKeyFile = _config.WebAuth.Keyfile()
	}
	if pubKeyFile == "" {
		pubKeyFile = _config.WebAuth.PubKeyfile()
	}

	if _, err := os.Stat(privKeyFile); err == nil {
		return fmt.Errorf("A key already lives under: %s", path.Dir(privKeyFile))
	}

	key, err := generateKey()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(path.Dir(privKeyFile), 0700); err != nil {
		return fmt.Errorf("Writing private key: %s", err)
	}

	simpleKey := keys.NewSimpleKeyfile(privKeyFile)

	if err := simpleKey.WriteKey(key); err != nil {
		return fmt.Errorf("Writing private key: %s", err)
	}

	fmt.Printf("Your private key has been saved to: %s\n", privKeyFile)

	if err := os.MkdirAll(path.Dir(pubKeyFile), 0700); err != nil {
		return fmt.Errorf("Writing public key: %s", err)
	}

	if err := os.WriteFile(pubKeyFile, []byte(key.Address()), 0600); err != nil {
		return fmt.Errorf("Writing public key: %s", err)
	}

	fmt.Printf("Your public key has been saved to: %s\n", pubKeyFile)
	fmt.Printf("Address: %s\n", key.Address())

	return nil
}

func generateKey() (*keys.Full, error) {
	words := mnemonic

	if newMnemonic {
		if words != "" {
			return nil, fmt.Errorf("--mnemonic and --new-mnemonic are mutually exclusive")
		}
		m, err := keys.NewMnemonic(256)
		if err != nil {
			return nil, fmt.Errorf("Generating mnemonic: %s", err)
		}
		fmt.Printf("Mnemonic (write it down, it will not be shown again):\n%s\n", m)
		words = m
	}

	if words != "" {
		return keys.FromMnemonic(words, "", keyIndex)
	}

	key, err := keys.Random()
	if err != nil {
		return nil, fmt.Errorf("Error generating Ed25519 key: %s", err)
	}
	return key, nil
}
