package model

import "errors"

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError is a wallet error with a stable code that callers can match on.
// Sentinels below are compared with errors.Is, wrapped values with errors.As.
type AppError struct {
	Code string
}

func (e *AppError) Error() string {
	return e.Code
}

func newAppError(code string) *AppError {
	return &AppError{Code: code}
}

// AsAppError extracts the AppError carried by err, if any
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Password errors
var (
	ErrPasswordBlank     = newAppError("password_blank")
	ErrPasswordWeak      = newAppError("password_weak")
	ErrPasswordIncorrect = newAppError("password_incorrect")
	ErrSessionClosed     = newAppError("session_closed")
)

// Mnemonic errors
var (
	ErrMnemonicLengthInvalid   = newAppError("mnemonic_length_invalid")
	ErrMnemonicWordInvalid     = newAppError("mnemonic_word_invalid")
	ErrMnemonicChecksumInvalid = newAppError("mnemonic_checksum_invalid")
	ErrMnemonicPathInvalid     = newAppError("mnemonic_path_invalid")
)

// Private key errors
var (
	ErrPrivateKeyInvalid      = newAppError("privatekey_invalid")
	ErrWIFInvalid             = newAppError("wif_invalid")
	ErrPublicKeyNotCompressed = newAppError("segwit_needs_compress_public_key")
)

// Keystore errors
var (
	ErrKeystoreInvalid            = newAppError("keystore_invalid")
	ErrKeystoreCipherUnsupported  = newAppError("cipher_unsupported")
	ErrKeystoreKDFUnsupported     = newAppError("kdf_unsupported")
	ErrKeystorePRFUnsupported     = newAppError("prf_unsupported")
	ErrKeystoreKDFParamsInvalid   = newAppError("kdf_params_invalid")
	ErrKeystoreMACUnmatch         = newAppError("mac_unmatch")
	ErrPrivateKeyAddressUnmatch   = newAppError("private_key_address_not_match")
	ErrKeystoreContainsInvalidKey = newAppError("keystore_contains_invalid_private_key")
)

// Address errors
var (
	ErrAddressInvalid      = newAppError("address_invalid")
	ErrAddressAlreadyExist = newAppError("address_already_exist")
)

// Generic errors
var (
	ErrImportFailed          = newAppError("import_failed")
	ErrGenerateFailed        = newAppError("generate_failed")
	ErrDeleteWalletFailed    = newAppError("delete_wallet_failed")
	ErrWalletNotFound        = newAppError("wallet_not_found")
	ErrOperationUnsupported  = newAppError("operation_unsupported")
	ErrUnknown               = newAppError("unknown_error")
	ErrUnsupportedChain      = newAppError("unsupported_chain")
	ErrStoreWalletFailed     = newAppError("store_wallet_failed")
	ErrParam                 = newAppError("param_error")
	ErrWIFWrongNetwork       = newAppError("wif_wrong_network")
	ErrInsufficientFunds     = newAppError("insufficient_funds")
	ErrAmountLessThanMinimum = newAppError("amount_less_than_minimum")
)

// EOS errors
var (
	ErrEOSAccountNameAlreadySet  = newAppError("eos_account_name_already_set")
	ErrEOSPrivatePublicNotMatch  = newAppError("eos_private_public_not_match")
	ErrEOSPublicKeyNotFound      = newAppError("eos_public_key_not_found")
	ErrEOSAccountNameInvalid     = newAppError("eos_account_name_invalid")
	ErrEOSRequiredEOSWallet      = newAppError("required_eos_wallet")
	ErrEOSInvalidSignature       = newAppError("eos_signature_invalid")
	ErrEOSInvalidPublicKeyFormat = newAppError("eos_public_key_invalid")
)

// Identity errors
var (
	ErrInvalidIdentity                = newAppError("invalid_identity")
	ErrUnsupportEncryptionDataVersion = newAppError("unsupport_encryption_data_version")
	ErrInvalidEncryptionDataSignature = newAppError("invalid_encryption_data_signature")
)
