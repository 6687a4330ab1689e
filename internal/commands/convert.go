package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/deepdatta/fixofx/internal/config"
	"github.com/deepdatta/fixofx/internal/convert"
	"github.com/deepdatta/fixofx/internal/ofx"
)

func newConvertCommand() *cobra.Command {
	var (
		configPath string
		output     string
		encoding   string
		verbose    bool
		acct       config.Account
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an IIF export to an OFX 1.02 document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				acct = mergeAccount(*loaded, acct)
			}

			input, err := readInput(args[0], encoding)
			if err != nil {
				return err
			}

			logger := zerolog.Nop()
			if verbose {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
					With().Timestamp().Logger()
			}

			conv := convert.New(convert.Options{
				FID:      acct.FID,
				Org:      acct.Org,
				BankID:   acct.BankID,
				AcctID:   acct.AcctID,
				AcctType: strings.ToUpper(acct.AcctType),
				Balance:  acct.Balance,
				CurDef:   acct.Currency,
				Lang:     acct.Language,
				DayFirst: acct.DayFirst,
				Logger:   &logger,
			})

			stmt, err := conv.Convert(input)
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}

			doc := ofx.Build(stmt)
			if output == "" || output == "-" {
				fmt.Print(doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "account config YAML file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&encoding, "encoding", "latin1", "input encoding (latin1 or utf8)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped transactions")

	cmd.Flags().StringVar(&acct.FID, "fid", "", "financial institution ID")
	cmd.Flags().StringVar(&acct.Org, "org", "", "financial institution organization")
	cmd.Flags().StringVar(&acct.BankID, "bankid", "", "bank routing ID")
	cmd.Flags().StringVar(&acct.AcctID, "acctid", "", "account ID")
	cmd.Flags().StringVar(&acct.AcctType, "accttype", "", "account type (CHECKING, SAVINGS, CREDITCARD, ...)")
	cmd.Flags().StringVar(&acct.Balance, "balance", "", "reported account balance")
	cmd.Flags().StringVar(&acct.Currency, "currency", "", "default currency (inferred when empty)")
	cmd.Flags().StringVar(&acct.Language, "lang", "", "statement language code")
	cmd.Flags().BoolVar(&acct.DayFirst, "dayfirst", false, "treat dates as day-first")

	return cmd
}

// mergeAccount overlays flag values on top of a loaded config file.
func mergeAccount(base, flags config.Account) config.Account {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&base.FID, flags.FID)
	overlay(&base.Org, flags.Org)
	overlay(&base.BankID, flags.BankID)
	overlay(&base.AcctID, flags.AcctID)
	overlay(&base.AcctType, flags.AcctType)
	overlay(&base.Balance, flags.Balance)
	overlay(&base.Currency, flags.Currency)
	overlay(&base.Language, flags.Language)
	if flags.DayFirst {
		base.DayFirst = true
	}
	return base
}

// readInput reads a bank export, decoding it from the selected encoding.
// Banks overwhelmingly ship latin-1, so that is the default.
func readInput(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	switch strings.ToLower(encoding) {
	case "latin1", "latin-1", "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding latin-1 input: %w", err)
		}
		return string(decoded), nil
	case "utf8", "utf-8":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}
