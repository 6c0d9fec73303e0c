// Command tonlaunch operates presale, jetton and airdrop contracts on TON.
package main

import "github.com/branched-services/go-tonlaunch/internal/cli"

func main() {
	cli.Execute()
}
