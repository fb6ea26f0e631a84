package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/mosaicnetworks/webauth/src/webauth"
	"github.com/spf13/cobra"
)

var (
	clientAccount string
	txB64         string
	signerSeed    string
	signerSpecs   []string
	threshold     int32
)

// NewChallengeCmd produces the challenge command and its subcommands
func NewChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Build, sign, inspect and verify challenge transactions",
	}

	buildCmd := &cobra.Command{
		Use:     "build",
		Short:   "Build a challenge signed by the server key",
		PreRunE: loadConfig,
		RunE:    buildChallenge,
	}
	AddConfigFlags(buildCmd)
	buildCmd.Flags().StringVar(&clientAccount, "client", "", "Account address of the client")

	signCmd := &cobra.Command{
		Use:     "sign",
		Short:   "Add a client signature to a challenge",
		PreRunE: loadConfig,
		RunE:    signChallenge,
	}
	AddConfigFlags(signCmd)
	signCmd.Flags().StringVar(&txB64, "tx", "", "Base64 challenge transaction")
	signCmd.Flags().StringVar(&signerSeed, "seed", "", "Secret seed of the signer")

	verifyCmd := &cobra.Command{
		Use:     "verify",
		Short:   "Verify the signatures of a challenge",
		PreRunE: loadConfig,
		RunE:    verifyChallenge,
	}
	AddConfigFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&txB64, "tx", "", "Base64 challenge transaction")
	verifyCmd.Flags().StringSliceVar(&signerSpecs, "signer", nil, "Signer of the client account, as ADDRESS or ADDRESS:WEIGHT")
	verifyCmd.Flags().Int32Var(&threshold, "threshold", 0, "Verify that the weights of the signers reach this threshold")

	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Print the content of a challenge",
		PreRunE: loadConfig,
		RunE:    inspectChallenge,
	}
	AddConfigFlags(inspectCmd)
	inspectCmd.Flags().StringVar(&txB64, "tx", "", "Base64 challenge transaction")

	cmd.AddCommand(buildCmd, signCmd, verifyCmd, inspectCmd)

	return cmd
}

func newAuthenticator() (*webauth.Authenticator, error) {
	key, err := keys.NewSimpleKeyfile(_config.WebAuth.Keyfile()).ReadKey()
	if err != nil {
		return nil, fmt.Errorf("Reading server key: %s", err)
	}
	return webauth.NewAuthenticator(key, &_config.WebAuth, nil)
}

func buildChallenge(cmd *cobra.Command, args []string) error {
	if clientAccount == "" {
		return fmt.Errorf("--client is required")
	}

	auth, err := newAuthenticator()
	if err != nil {
		return err
	}

	tx, err := auth.Challenge(clientAccount, time.Now())
	if err != nil {
		return err
	}

	b64, err := tx.Base64()
	if err != nil {
		return err
	}

	fmt.Println(b64)
	return nil
}

func signChallenge(cmd *cobra.Command, args []string) error {
	tx, err := txn.FromBase64(txB64)
	if err != nil {
		return err
	}

	key, err := keys.ParseFull(signerSeed)
	if err != nil {
		return fmt.Errorf("Parsing seed: %s", err)
	}

	if err := tx.Sign(_config.WebAuth.Network, key); err != nil {
		return err
	}

	b64, err := tx.Base64()
	if err != nil {
		return err
	}

	fmt.Println(b64)
	return nil
}

// parseSigners reads ADDRESS[:WEIGHT] specifications. A signer without an
// explicit weight has weight 1.
func parseSigners(specs []string) ([]webauth.Signer, error) {
	signers := make([]webauth.Signer, 0, len(specs))
	for _, spec := range specs {
		address, weight, found := strings.Cut(spec, ":")
		s := webauth.Signer{Address: address, Weight: 1}
		if found {
			w, err := strconv.ParseInt(weight, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("Invalid weight in %q: %s", spec, err)
			}
			s.Weight = int32(w)
		}
		signers = append(signers, s)
	}
	return signers, nil
}

func verifyChallenge(cmd *cobra.Command, args []string) error {
	tx, err := txn.FromBase64(txB64)
	if err != nil {
		return err
	}

	signers, err := parseSigners(signerSpecs)
	if err != nil {
		return err
	}

	auth, err := newAuthenticator()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("threshold") {
		found, err := auth.VerifyThreshold(tx, time.Now(), threshold, signers)
		if err != nil {
			return err
		}
		return printYAML(map[string]interface{}{"signers": found})
	}

	addresses := make([]string, len(signers))
	for i, s := range signers {
		addresses[i] = s.Address
	}

	found, err := auth.VerifySigners(tx, time.Now(), addresses...)
	if err != nil {
		return err
	}
	return printYAML(map[string]interface{}{"signers": found})
}

type operationInfo struct {
	Type   string `yaml:"type"`
	Source string `yaml:"source,omitempty"`
	Name   string `yaml:"name,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

type challengeInfo struct {
	Hash       string          `yaml:"hash"`
	Source     string          `yaml:"source"`
	Sequence   int64           `yaml:"sequence"`
	Fee        uint32          `yaml:"fee"`
	MinTime    string          `yaml:"min_time,omitempty"`
	MaxTime    string          `yaml:"max_time,omitempty"`
	Operations []operationInfo `yaml:"operations"`
	Signatures []string        `yaml:"signatures"`
}

func describeChallenge(tx *txn.Transaction, network string) (*challengeInfo, error) {
	hash, err := tx.Hash(network)
	if err != nil {
		return nil, err
	}

	info := &challengeInfo{
		Hash:     hex.EncodeToString(hash[:]),
		Source:   tx.SourceAccount.Address(),
		Sequence: tx.SeqNum,
		Fee:      tx.Fee,
	}

	if tb := tx.TimeBounds; tb != nil {
		if tb.MinTime != 0 {
			info.MinTime = time.Unix(tb.MinTime, 0).UTC().Format(time.RFC3339)
		}
		if tb.MaxTime != 0 {
			info.MaxTime = time.Unix(tb.MaxTime, 0).UTC().Format(time.RFC3339)
		}
	}

	for _, op := range tx.Operations {
		oi := operationInfo{Type: op.Type.String()}
		if op.SourceAccount != nil {
			oi.Source = op.SourceAccount.Address()
		}
		if data, ok := op.GetManageData(); ok {
			oi.Name = data.Name
			oi.Value = string(data.Value)
		}
		info.Operations = append(info.Operations, oi)
	}

	for _, sig := range tx.Signatures {
		info.Signatures = append(info.Signatures, sig.String())
	}

	return info, nil
}

func inspectChallenge(cmd *cobra.Command, args []string) error {
	tx, err := txn.FromBase64(txB64)
	if err != nil {
		return err
	}

	info, err := describeChallenge(tx, _config.WebAuth.Network)
	if err != nil {
		return err
	}

	return printYAML(info)
}
