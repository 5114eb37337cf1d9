package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/multichain-wallet/internal/config"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"
	"github.com/AlexZinkM/multichain-wallet/keystore"

	"github.com/urfave/cli"
)

var reencryptCommand = cli.Command{
	Name:      "reencrypt",
	Usage:     "re-encrypt an ethereum V3 keystore with scrypt and a new password",
	ArgsUsage: "<keystore file>",
	Description: "Decrypts a V3 keystore of any supported KDF and writes it back " +
		"sealed with scrypt (WALLET_SCRYPT_N) and AES-128-CTR. The id and address " +
		"are kept.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "out",
			Usage: "file to write the new keystore to, stdout when empty",
		},
	},
	Action: reencrypt,
}

func reencrypt(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowCommandHelp(c, "reencrypt")
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read keystore: %w", err)
	}

	oldPassword, err := config.ReadPassword("Current keystore password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)
	newPassword, err := config.ReadPassword("New keystore password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	out, err := reencryptKeystore(data, oldPassword, newPassword)
	if err != nil {
		return err
	}

	if path := c.String("out"); path != "" {
		return os.WriteFile(path, out, 0600)
	}
	fmt.Println(string(out))
	return nil
}

// reencryptKeystore opens a V3 keystore with oldPassword and seals the same key
// under newPassword with the current scrypt parameters
func reencryptKeystore(data, oldPassword, newPassword []byte) ([]byte, error) {
	if err := validator.ValidateV3Keystore(data); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	ks, err := keystore.ParseETHKeystore(data)
	if err != nil {
		return nil, err
	}
	session, err := ks.Unlock(oldPassword)
	if err != nil {
		return nil, err
	}
	privateKey, err := ks.DecryptPrivateKey(session)
	session.Close()
	if err != nil {
		return nil, err
	}

	next, err := keystore.NewETHKeystore(newPassword, privateKey, ks.Meta(), ks.ID())
	if err != nil {
		return nil, err
	}
	if next.Address() != ks.Address() {
		return nil, fmt.Errorf("re-encrypted address %s does not match %s", next.Address(), ks.Address())
	}
	return next.ExportV3()
}
