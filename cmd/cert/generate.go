// SPDX-License-Identifier: Apache-2.0
package cert

import (
	"fmt"
	"os"

	"github.com/Work-Fort/Bellows/pkg/cert"
	"github.com/Work-Fort/Bellows/pkg/config"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	principal string
	outputDir string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a certificate/key pair",
		Long: `Generate a self-signed certificate and private key named <name>.pem and
<name>-key.pem. The subject CN defaults to the name; set cert.principal
in config or pass --principal to override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.principal, "principal", "", "Subject CN for the certificate (defaults to cert.principal, then the name)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory to write the pair into (defaults to cert.dir)")

	return cmd
}

func runGenerate(name string, opts *generateOptions) error {
	principal := opts.principal
	if principal == "" {
		principal = config.GetCertPrincipal()
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = config.GetCertDir()
	}

	c, err := cert.Generate(cert.Options{
		Name:      name,
		Principal: principal,
		OutputDir: outputDir,
	})
	if err != nil {
		return err
	}

	certPath, keyPath, err := c.WriteFiles()
	if err != nil {
		return err
	}

	theme := config.CurrentTheme
	c.Summary(os.Stdout)
	fmt.Println(theme.SuccessMessage(fmt.Sprintf("Wrote %s and %s", certPath, keyPath)))
	return nil
}
