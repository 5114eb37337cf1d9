// Package docs holds the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/identity": {
            "get": {
                "description": "Returns the identifier, IPFS id and wallets of the current identity",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Get identity",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.IdentityResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/auth/sign": {
            "post": {
                "description": "Signs \"accessTime.identifier.deviceToken\" with the identity authentication key",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Sign authentication message",
                "parameters": [
                    {
                        "description": "Challenge",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AuthSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SignatureResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/create": {
            "post": {
                "description": "Generates a new mnemonic and derives the default ETH and BTC wallets. The mnemonic is returned once.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Create identity",
                "parameters": [
                    {
                        "description": "Identity metadata",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.IdentityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.IdentityResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/delete": {
            "post": {
                "description": "Removes the identity and every wallet from storage",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Delete identity",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SuccessResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/export": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Export identity mnemonic",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.MnemonicResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/ipfs/decrypt": {
            "post": {
                "description": "Checks the envelope signature against the identity and opens it",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Decrypt data from IPFS",
                "parameters": [
                    {
                        "description": "Hex envelope",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.IPFSDecryptRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.IPFSResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/ipfs/encrypt": {
            "post": {
                "description": "Seals content with the identity encryption key and signs the envelope",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Encrypt data for IPFS",
                "parameters": [
                    {
                        "description": "Plaintext",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.IPFSEncryptRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.IPFSResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/identity/recover": {
            "post": {
                "description": "Rebuilds the identity of a mnemonic and derives the default ETH and BTC wallets",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Recover identity",
                "parameters": [
                    {
                        "description": "Mnemonic and identity metadata",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.IdentityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.IdentityResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets": {
            "get": {
                "description": "Returns the public view of every wallet of the current identity",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "List wallets",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.WalletsResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/btc/mode": {
            "post": {
                "description": "Re-derives a bitcoin wallet as legacy (NONE) or P2SH-P2WPKH (P2WPKH) keeping its id",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bitcoin"
                ],
                "summary": "Switch bitcoin address type",
                "parameters": [
                    {
                        "description": "Wallet and mode",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.BTCModeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/btc/sign": {
            "post": {
                "description": "Selects UTXOs in order until they cover amount plus fee and signs a P2PKH or P2SH-P2WPKH transaction",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bitcoin"
                ],
                "summary": "Sign bitcoin transaction",
                "parameters": [
                    {
                        "description": "Payment",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wallet.BTCSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.TransactionSignedResult"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/derive": {
            "post": {
                "description": "Derives one wallet per chain type from the identity mnemonic",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Derive wallets",
                "parameters": [
                    {
                        "description": "Chain types",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.DeriveRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.WalletsResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eos/account": {
            "post": {
                "description": "Binds an EOS wallet derived without an account to its account name",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "eos"
                ],
                "summary": "Set EOS account name",
                "parameters": [
                    {
                        "description": "Wallet and account name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EOSAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eos/ecrecover": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "eos"
                ],
                "summary": "Recover EOS public key",
                "parameters": [
                    {
                        "description": "Data and signature",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EOSECRecoverRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.PublicKeyResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eos/ecsign": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "eos"
                ],
                "summary": "Sign data with an EOS key",
                "parameters": [
                    {
                        "description": "Data and public key",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EOSECSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SignatureResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eos/sign": {
            "post": {
                "description": "Signs each serialized transaction with the wallet keys it names",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "eos"
                ],
                "summary": "Sign EOS transactions",
                "parameters": [
                    {
                        "description": "Transactions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EOSSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.EOSSignResult"
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eth/personal-sign": {
            "post": {
                "description": "Signs a message with the ethereum signed message prefix and returns r||s||v hex",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ethereum"
                ],
                "summary": "Personal sign",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ETHPersonalSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SignatureResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/eth/sign": {
            "post": {
                "description": "Signs a legacy transaction, EIP-155 protected when chainId is positive",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ethereum"
                ],
                "summary": "Sign ethereum transaction",
                "parameters": [
                    {
                        "description": "Transaction",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wallet.ETHSignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.TransactionSignedResult"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/export": {
            "post": {
                "description": "Exports the private key, EOS key pairs, mnemonic or V3 keystore of a wallet",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Export wallet secret",
                "parameters": [
                    {
                        "description": "Wallet and export kind",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.ExportResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/find": {
            "get": {
                "description": "Looks a wallet up by id, or by address and chain type",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Find wallet",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Wallet ID",
                        "name": "id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Wallet address",
                        "name": "address",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "ETHEREUM, BITCOIN or EOS",
                        "name": "chainType",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/import": {
            "post": {
                "description": "Imports a wallet from a mnemonic, a private key, a V3 keystore or EOS keys",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Import wallet",
                "parameters": [
                    {
                        "description": "Key material and metadata",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ImportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/qr": {
            "get": {
                "description": "Returns a base64 PNG QR code of the wallet payment URI. With index, a bitcoin mnemonic wallet encodes its external address at that index.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Wallet address QR code",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Wallet ID",
                        "name": "id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "External address index",
                        "name": "index",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Requested amount in BTC or ETH",
                        "name": "amount",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.QRResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/remove": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Remove wallet",
                "parameters": [
                    {
                        "description": "Wallet",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.WalletRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SuccessResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/wallets/verify-password": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "wallets"
                ],
                "summary": "Verify wallet password",
                "parameters": [
                    {
                        "description": "Wallet",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.WalletRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SuccessResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "model.AuthSignRequest": {
            "type": "object",
            "properties": {
                "accessTime": {
                    "type": "integer"
                },
                "deviceToken": {
                    "type": "string"
                }
            }
        },
        "model.BTCModeRequest": {
            "type": "object",
            "properties": {
                "segWit": {
                    "type": "string",
                    "example": "P2WPKH"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.DeriveRequest": {
            "type": "object",
            "properties": {
                "chainTypes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "model.EOSAccountRequest": {
            "type": "object",
            "properties": {
                "accountName": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.EOSECRecoverRequest": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "string"
                },
                "isHex": {
                    "type": "boolean"
                },
                "signature": {
                    "type": "string"
                }
            }
        },
        "model.EOSECSignRequest": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "string"
                },
                "isHex": {
                    "type": "boolean"
                },
                "publicKey": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.EOSPermission": {
            "type": "object",
            "properties": {
                "parent": {
                    "type": "string"
                },
                "permission": {
                    "type": "string"
                },
                "publicKey": {
                    "type": "string"
                }
            }
        },
        "model.EOSSignRequest": {
            "type": "object",
            "properties": {
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.EOSTransaction"
                    }
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.EOSSignResult": {
            "type": "object",
            "properties": {
                "hash": {
                    "type": "string"
                },
                "signs": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "model.EOSTransaction": {
            "type": "object",
            "properties": {
                "chainId": {
                    "type": "string"
                },
                "data": {
                    "type": "string"
                },
                "publicKeys": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "model.ETHPersonalSignRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "model.ExportRequest": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "example": "privateKey"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.ExportResponse": {
            "type": "object",
            "properties": {
                "keyPairs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.KeyPair"
                    }
                },
                "keystore": {
                    "type": "object"
                },
                "mnemonic": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "privateKey": {
                    "type": "string"
                }
            }
        },
        "model.IPFSDecryptRequest": {
            "type": "object",
            "properties": {
                "payload": {
                    "type": "string"
                }
            }
        },
        "model.IPFSEncryptRequest": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                }
            }
        },
        "model.IPFSResponse": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                },
                "payload": {
                    "type": "string"
                }
            }
        },
        "model.IdentityRequest": {
            "type": "object",
            "properties": {
                "chainType": {
                    "type": "string"
                },
                "mnemonic": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "network": {
                    "type": "string",
                    "example": "MAINNET"
                },
                "passwordHint": {
                    "type": "string"
                },
                "segWit": {
                    "type": "string",
                    "example": "NONE"
                }
            }
        },
        "model.IdentityResponse": {
            "type": "object",
            "properties": {
                "identifier": {
                    "type": "string"
                },
                "ipfsId": {
                    "type": "string"
                },
                "mnemonic": {
                    "type": "string"
                },
                "wallets": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "additionalProperties": true
                    }
                }
            }
        },
        "model.ImportRequest": {
            "type": "object",
            "properties": {
                "accountName": {
                    "type": "string"
                },
                "chainType": {
                    "type": "string"
                },
                "keystore": {
                    "type": "object"
                },
                "kind": {
                    "type": "string",
                    "example": "mnemonic"
                },
                "mnemonic": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "network": {
                    "type": "string",
                    "example": "MAINNET"
                },
                "passwordHint": {
                    "type": "string"
                },
                "path": {
                    "type": "string",
                    "example": "m/44'/60'/0'/0/0"
                },
                "permissions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.EOSPermission"
                    }
                },
                "privateKey": {
                    "type": "string"
                },
                "privateKeys": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "segWit": {
                    "type": "string",
                    "example": "NONE"
                }
            }
        },
        "model.KeyPair": {
            "type": "object",
            "properties": {
                "privateKey": {
                    "type": "string"
                },
                "publicKey": {
                    "type": "string"
                }
            }
        },
        "model.MnemonicResponse": {
            "type": "object",
            "properties": {
                "mnemonic": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                }
            }
        },
        "model.PublicKeyResponse": {
            "type": "object",
            "properties": {
                "publicKey": {
                    "type": "string"
                }
            }
        },
        "model.QRResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "qrCode": {
                    "type": "string"
                },
                "uri": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.SignatureResponse": {
            "type": "object",
            "properties": {
                "signature": {
                    "type": "string"
                }
            }
        },
        "model.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "model.TransactionSignedResult": {
            "type": "object",
            "properties": {
                "signedTx": {
                    "type": "string"
                },
                "txHash": {
                    "type": "string"
                },
                "wtxId": {
                    "type": "string"
                }
            }
        },
        "model.UTXO": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "derivedPath": {
                    "type": "string"
                },
                "scriptPubKey": {
                    "type": "string"
                },
                "sequence": {
                    "type": "integer"
                },
                "txHash": {
                    "type": "string"
                },
                "vout": {
                    "type": "integer"
                }
            }
        },
        "model.WalletRequest": {
            "type": "object",
            "properties": {
                "walletId": {
                    "type": "string"
                }
            }
        },
        "model.WalletsResponse": {
            "type": "object",
            "properties": {
                "wallets": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "additionalProperties": true
                    }
                }
            }
        },
        "wallet.BTCSignRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "changeIdx": {
                    "type": "integer"
                },
                "fee": {
                    "type": "integer"
                },
                "outputs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.UTXO"
                    }
                },
                "to": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        },
        "wallet.ETHSignRequest": {
            "type": "object",
            "properties": {
                "chainId": {
                    "type": "integer"
                },
                "data": {
                    "type": "string"
                },
                "gasLimit": {
                    "type": "string"
                },
                "gasPrice": {
                    "type": "string"
                },
                "nonce": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                },
                "walletId": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Multichain Wallet API",
	Description:      "HD identity and wallet engine for Bitcoin, Ethereum and EOS.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
