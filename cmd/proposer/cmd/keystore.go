package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/keystore"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Manage the encrypted delegate keystore",
}

var keystoreEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt the delegate secret into a keystore file",
	Long: `Prompts for the delegate secret (a raw private key hex or a BIP-39
mnemonic) and a password, and writes the scrypt/AES-GCM encrypted keystore.
Point delegate.keystore_path at the result to stop passing the raw key
through the environment.`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		secret, err := readSecret("Delegate secret (hex key or mnemonic): ")
		if err != nil {
			fmt.Printf("read secret failed: %v\n", err)
			os.Exit(1)
		}

		password, err := readSecret("Password: ")
		if err != nil {
			fmt.Printf("read password failed: %v\n", err)
			os.Exit(1)
		}
		confirm, err := readSecret("Confirm password: ")
		if err != nil || password != confirm {
			fmt.Println("passwords do not match")
			os.Exit(1)
		}

		encrypted, err := keystore.EncryptSecret(secret, password)
		if err != nil {
			fmt.Printf("encryption failed: %v\n", err)
			os.Exit(1)
		}

		if err := encrypted.SaveToFile(out); err != nil {
			fmt.Printf("write failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Keystore written to %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(keystoreCmd)
	keystoreCmd.AddCommand(keystoreEncryptCmd)

	keystoreEncryptCmd.Flags().StringP("out", "o", "delegate.json", "output keystore file")
}

func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
