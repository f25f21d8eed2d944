// Copyright 2026 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/erigontech/statevalue/accounts"
	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/common/hex"
	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/storage"
)

var registry = newRegistry()

func newRegistry() *storage.Registry {
	r := storage.NewRegistry()
	if err := accounts.Register(r); err != nil {
		panic(err)
	}
	return r
}

// target is a value named on the command line. Undeclared names are handled
// as raw payloads.
type target struct {
	name     string
	key      storage.Key
	declared storage.Declared
}

func resolve(ctx *cli.Context) (target, error) {
	name := ctx.Args().First()
	if name == "" {
		return target{}, errors.New("value name required, as OwnerScope/ValueID or 0x-prefixed key")
	}
	if strings.HasPrefix(name, "0x") {
		k, err := storage.ParseKey(name)
		if err != nil {
			return target{}, err
		}
		d, _ := registry.Lookup(k)
		return target{name: name, key: k, declared: d}, nil
	}
	scope, id, ok := strings.Cut(name, "/")
	if !ok || scope == "" || id == "" {
		return target{}, fmt.Errorf("bad value name %q, want OwnerScope/ValueID", name)
	}
	d, _ := registry.LookupName(name)
	return target{name: name, key: storage.FinalKey([]byte(scope), []byte(id)), declared: d}, nil
}

func hexArg(ctx *cli.Context, i int, what string) ([]byte, error) {
	s := ctx.Args().Get(i)
	if s == "" {
		return nil, fmt.Errorf("%s required", what)
	}
	b, err := hex.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return b, nil
}

var (
	keyCmd = &cli.Command{
		Name:      "key",
		Usage:     "Print the final key of a value",
		ArgsUsage: "OwnerScope/ValueID",
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(ctx.App.Writer, t.key)
			return err
		},
	}

	listCmd = &cli.Command{
		Name:  "list",
		Usage: "List declared values and whether they hold a payload",
		Action: func(ctx *cli.Context) error {
			return withTx(ctx, func(tx kv.RwTx) error {
				for _, d := range registry.All() {
					state := "absent"
					if d.Exists(tx) {
						state = "present"
					}
					if _, err := fmt.Fprintf(ctx.App.Writer, "%s %s %s\n", d.Key(), d, state); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	getCmd = &cli.Command{
		Name:      "get",
		Usage:     "Print a value; declared values are decoded, others printed as hex",
		ArgsUsage: "OwnerScope/ValueID | 0xKEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Print the payload as hex even for declared values"},
		},
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			return withTx(ctx, func(tx kv.RwTx) error {
				raw, ok := tx.Get(t.key.Bytes())
				if !ok {
					_, err := fmt.Fprintln(ctx.App.Writer, "absent")
					return err
				}
				out := hex.Encode(raw)
				if t.declared != nil && !ctx.Bool("raw") {
					if out, err = t.declared.Format(raw); err != nil {
						return fmt.Errorf("%s: %w", t.name, err)
					}
				}
				_, err := fmt.Fprintln(ctx.App.Writer, out)
				return err
			})
		},
	}

	lenCmd = &cli.Command{
		Name:      "len",
		Usage:     "Print the element count of a sequence value",
		ArgsUsage: "OwnerScope/ValueID | 0xKEY",
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			if t.declared != nil {
				if _, ok := t.declared.(storage.LengthDecoder); !ok {
					return fmt.Errorf("%s is not a sequence", t.declared)
				}
			}
			return withTx(ctx, func(tx kv.RwTx) error {
				var n int
				if ld, ok := t.declared.(storage.LengthDecoder); ok {
					n, err = ld.DecodeLen(tx)
				} else if raw, ok := tx.Get(t.key.Bytes()); ok {
					n, err = codec.DecodeLen(raw)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", t.name, err)
				}
				_, err = fmt.Fprintln(ctx.App.Writer, n)
				return err
			})
		},
	}

	putCmd = &cli.Command{
		Name:      "put",
		Usage:     "Store a raw hex payload",
		ArgsUsage: "OwnerScope/ValueID | 0xKEY PAYLOAD",
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			payload, err := hexArg(ctx, 1, "payload")
			if err != nil {
				return err
			}
			if t.declared != nil {
				if _, err := t.declared.Format(payload); err != nil {
					return fmt.Errorf("payload does not decode as %s: %w", t.declared, err)
				}
			}
			return withTx(ctx, func(tx kv.RwTx) error {
				tx.Put(t.key.Bytes(), payload)
				return nil
			})
		},
	}

	killCmd = &cli.Command{
		Name:      "kill",
		Usage:     "Delete a value's payload",
		ArgsUsage: "OwnerScope/ValueID | 0xKEY",
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			return withTx(ctx, func(tx kv.RwTx) error {
				tx.Delete(t.key.Bytes())
				return nil
			})
		},
	}

	appendCmd = &cli.Command{
		Name:      "append",
		Usage:     "Append one encoded item to a sequence value",
		ArgsUsage: "OwnerScope/ValueID | 0xKEY ITEM",
		Action: func(ctx *cli.Context) error {
			t, err := resolve(ctx)
			if err != nil {
				return err
			}
			if t.declared != nil {
				if _, ok := t.declared.(storage.LengthDecoder); !ok {
					return fmt.Errorf("%s is not a sequence", t.declared)
				}
			}
			item, err := hexArg(ctx, 1, "item")
			if err != nil {
				return err
			}
			return withTx(ctx, func(tx kv.RwTx) error {
				tx.Append(t.key.Bytes(), item)
				return nil
			})
		},
	}

	accountsCmd = &cli.Command{
		Name:  "accounts",
		Usage: "Operate on the accounts values",
		Subcommands: []*cli.Command{
			{
				Name:      "deposit",
				ArgsUsage: "AMOUNT",
				Action:    amountAction(accounts.Deposit),
			},
			{
				Name:      "withdraw",
				ArgsUsage: "AMOUNT",
				Action:    amountAction(accounts.Withdraw),
			},
			{
				Name: "total",
				Action: func(ctx *cli.Context) error {
					return withTx(ctx, func(tx kv.RwTx) error {
						total := accounts.Total.Get(tx)
						_, err := fmt.Fprintln(ctx.App.Writer, total.Dec())
						return err
					})
				},
			},
			{
				Name:      "add-holder",
				ArgsUsage: "ID",
				Action: func(ctx *cli.Context) error {
					id, err := hexArg(ctx, 0, "holder id")
					if err != nil {
						return err
					}
					return withTx(ctx, func(tx kv.RwTx) error {
						accounts.AddHolder(tx, id)
						return nil
					})
				},
			},
			{
				Name: "holders",
				Action: func(ctx *cli.Context) error {
					return withTx(ctx, func(tx kv.RwTx) error {
						n, err := accounts.HolderCount(tx)
						if err != nil {
							return err
						}
						if _, err := fmt.Fprintf(ctx.App.Writer, "%d holder(s)\n", n); err != nil {
							return err
						}
						for _, id := range accounts.Holders.Get(tx) {
							if _, err := fmt.Fprintln(ctx.App.Writer, hex.Encode(id)); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate-params",
				Usage: "Rewrite Accounts/Params from the v0 layout",
				Action: func(ctx *cli.Context) error {
					return withTx(ctx, func(tx kv.RwTx) error {
						p, err := accounts.MigrateParams(tx)
						if err != nil {
							return err
						}
						if p == nil {
							_, err = fmt.Fprintln(ctx.App.Writer, "absent")
							return err
						}
						_, err = fmt.Fprintf(ctx.App.Writer, "%+v\n", *p)
						return err
					})
				},
			},
		},
	}
)

func amountAction(op func(tx kv.RwStore, amount *uint256.Int) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		s := ctx.Args().First()
		if s == "" {
			return errors.New("amount required")
		}
		amount, err := uint256.FromDecimal(s)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		return withTx(ctx, func(tx kv.RwTx) error {
			return op(tx, amount)
		})
	}
}
