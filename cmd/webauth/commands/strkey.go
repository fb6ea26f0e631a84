package commands

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var encodeKind string

// NewStrkeyCmd produces the strkey command and its subcommands
func NewStrkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strkey",
		Short: "Encode and decode StrKey identifiers",
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [text]",
		Short: "Decode an identifier and print its components",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectStrkey,
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [hex]",
		Short: "Encode a raw hex payload as an identifier",
		Args:  cobra.ExactArgs(1),
		RunE:  encodeStrkey,
	}
	encodeCmd.Flags().StringVar(&encodeKind, "kind", strkey.VersionByteAccountID.String(), "Kind of identifier, eg. AccountID, Seed, MuxedAccount, SignedPayload")

	cmd.AddCommand(inspectCmd, encodeCmd)

	return cmd
}

type strkeyInfo struct {
	Kind    string `yaml:"kind"`
	Payload string `yaml:"payload"`
	Account string `yaml:"account,omitempty"`
	ID      string `yaml:"id,omitempty"`
	Signer  string `yaml:"signer,omitempty"`
	Data    string `yaml:"data,omitempty"`
}

func describeStrkey(text string) (*strkeyInfo, error) {
	version, err := strkey.Version(text)
	if err != nil {
		return nil, err
	}

	payload, err := strkey.Decode(version, text)
	if err != nil {
		return nil, err
	}

	info := &strkeyInfo{
		Kind:    version.String(),
		Payload: hex.EncodeToString(payload),
	}

	switch version {
	case strkey.VersionByteMuxedAccount:
		pub, id, err := strkey.DecodeMuxedAccount(text)
		if err != nil {
			return nil, err
		}
		info.Account = strkey.MustEncode(strkey.VersionByteAccountID, pub)
		info.ID = fmt.Sprintf("%d", id)
	case strkey.VersionByteSignedPayload:
		sp, err := strkey.DecodeSignedPayload(text)
		if err != nil {
			return nil, err
		}
		info.Signer = sp.Signer()
		info.Data = hex.EncodeToString(sp.Payload())
	}

	return info, nil
}

func inspectStrkey(cmd *cobra.Command, args []string) error {
	info, err := describeStrkey(args[0])
	if err != nil {
		return err
	}
	return printYAML(info)
}

func encodeStrkey(cmd *cobra.Command, args []string) error {
	version, err := strkey.ParseVersionByte(encodeKind)
	if err != nil {
		return err
	}

	payload, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("Decoding hex payload: %s", err)
	}

	text, err := strkey.Encode(version, payload)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
