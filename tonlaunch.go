// Package tonlaunch provides typed Go clients for a TON token launch
// contract suite: a crowdfunding presale with per-investor deposit bills,
// a TEP-74 jetton master and wallet, and a Merkle-proof airdrop.
//
// The contracts themselves are compiled artifacts and are not part of this
// package. tonlaunch builds the message bodies that invoke them and decodes
// the values their get-methods return. Everything travels as TON cells built
// with tonutils-go.
//
// # Basic Usage
//
// Connect to a lite server, open a contract, read and write:
//
//	provider, err := tonlaunch.DialLiteProvider(ctx, "https://ton.org/testnet-global.config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := tonlaunch.WalletFromSeed(provider.API(), words, "v4r2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	admin := tonlaunch.NewWalletSender(w)
//
//	presale := tonlaunch.NewCrowdFunding(presaleAddr, provider)
//
//	data, err := presale.PublicData(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = presale.SendExtendTime(ctx, admin, tlb.MustFromTON("0.05"), data.EndTime+86400)
//
// # Deploying
//
// Wrappers created from a config carry their StateInit. The first message
// sent to an inactive account attaches it, which deploys the contract:
//
//	presale, err := tonlaunch.CrowdFundingFromConfig(cfg, code, provider)
//	err = presale.SendDeploy(ctx, admin, tlb.MustFromTON("0.05"))
//
// # Batching
//
// A wallet can carry several messages in one transaction. Batch collects
// them and enforces the wallet limit:
//
//	batch := tonlaunch.NewBatch()
//	batch.Add(presale.WithdrawLiquidityMessage(gas))
//	batch.Add(presale.WithdrawCommissionMessage(gas, platform))
//	err := batch.Send(ctx, admin)
//
// # Decoding
//
// Incoming bodies (jetton notifications, excesses, discovery replies) are
// decoded by opcode:
//
//	op, body, err := tonlaunch.DecodeBody(msg.Payload())
//	if n, ok := body.(*tonlaunch.JettonTransferNotification); ok {
//	    fmt.Println(op, n.Amount)
//	}
//
// # References
//
//   - https://github.com/ton-blockchain/TEPs/blob/master/text/0074-jettons-standard.md
//   - https://github.com/ton-blockchain/TEPs/blob/master/text/0089-jetton-wallet-discovery.md
//   - https://github.com/xssnick/tonutils-go
package tonlaunch
