/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hyperledger/fabric-bnc/common/crypto"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-bnc/internal/bnpeer/common"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var logger = flogging.MustGetLogger("cli.identity")

type options struct {
	profile  string
	name     string
	secret   string
	certFile string
	issuer   bool
}

// view is the printable form of an identity. Secrets are never shown.
type view struct {
	Name        string `yaml:"name"`
	Identifier  string `yaml:"identifier"`
	Issuer      string `yaml:"issuer"`
	Imported    bool   `yaml:"imported"`
	CanIssue    bool   `yaml:"canIssue"`
	ExpiresAt   string `yaml:"expiresAt,omitempty"`
	Certificate string `yaml:"certificate,omitempty"`
}

// Cmd returns the cobra command for identity administration.
func Cmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the identities of a connection profile.",
		Long:  "Issue, import, verify and show the identities stored for a connection profile. The peer must not be running.",
	}
	flags := cmd.PersistentFlags()
	common.AddConfigFlag(flags)
	flags.StringVarP(&opts.profile, "profile", "p", "", "connection profile name")
	flags.StringVarP(&opts.name, "name", "n", "", "identity name")

	cmd.AddCommand(issueCmd(opts), verifyCmd(opts), importCmd(opts), showCmd(opts))
	return cmd
}

func issueCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a new identity as the profile admin.",
		RunE: run(opts, func(im *identity.Manager, out io.Writer) error {
			admin, err := im.GetIdentity(identity.AdminName)
			if err != nil {
				return err
			}
			creds, err := im.CreateIdentity(admin, opts.name, map[string]interface{}{identity.IssuerOption: opts.issuer})
			if err != nil {
				return err
			}
			return printYAML(out, creds)
		}),
	}
	cmd.Flags().BoolVar(&opts.issuer, "issuer", false, "allow the identity to issue identities")
	return cmd
}

func verifyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the secret of an identity.",
		RunE: run(opts, func(im *identity.Manager, out io.Writer) error {
			if _, err := im.TestIdentity(opts.name, opts.secret); err != nil {
				return err
			}
			fmt.Fprintf(out, "identity [%s] verified\n", opts.name)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "identity secret")
	return cmd
}

func importCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an identity from a PEM certificate.",
		RunE: run(opts, func(im *identity.Manager, out io.Writer) error {
			if opts.certFile == "" {
				return errors.New("a certificate file is required")
			}
			certPEM, err := os.ReadFile(opts.certFile)
			if err != nil {
				return errors.Wrap(err, "failed to read certificate")
			}
			id, err := im.ImportIdentity(opts.name, certPEM, map[string]interface{}{identity.IssuerOption: opts.issuer})
			if err != nil {
				return err
			}
			return printYAML(out, toView(id, false))
		}),
	}
	cmd.Flags().StringVar(&opts.certFile, "cert", "", "PEM encoded certificate file")
	cmd.Flags().BoolVar(&opts.issuer, "issuer", false, "allow the identity to issue identities")
	return cmd
}

func showCmd(opts *options) *cobra.Command {
	var withCert bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an identity.",
		RunE: run(opts, func(im *identity.Manager, out io.Writer) error {
			id, err := im.GetIdentity(opts.name)
			if err != nil {
				return err
			}
			return printYAML(out, toView(id, withCert))
		}),
	}
	cmd.Flags().BoolVar(&withCert, "cert", false, "include the PEM certificate")
	return cmd
}

func run(opts *options, f func(im *identity.Manager, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return errors.New("trailing args detected")
		}
		if opts.profile == "" || opts.name == "" {
			return errors.New("both --profile and --name are required")
		}
		// Parsing of the command line is done so silence cmd usage
		cmd.SilenceUsage = true

		conf, err := common.LoadConfig()
		if err != nil {
			return err
		}
		peer, err := common.NewPeer(conf, &disabled.Provider{})
		if err != nil {
			return err
		}
		defer peer.Close()

		im, err := peer.Connections.IdentityManager(opts.profile)
		if err != nil {
			return err
		}
		logger.Debugf("Running %s for identity [%s] of connection profile [%s]", cmd.Name(), opts.name, opts.profile)
		return f(im, cmd.OutOrStdout())
	}
}

func toView(id *identity.Identity, withCert bool) *view {
	v := &view{
		Name:       id.Name,
		Identifier: id.Identifier,
		Issuer:     id.Issuer,
		Imported:   id.Imported,
		CanIssue:   id.IsIssuer(),
	}
	if expiresAt := crypto.CertExpiresAt([]byte(id.Certificate)); !expiresAt.IsZero() {
		v.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	}
	if withCert {
		v.Certificate = id.Certificate
	}
	return v
}

func printYAML(out io.Writer, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	_, err = out.Write(raw)
	return err
}
