/*

This file converts a public key to its IPv6 address and routed subnet. Example:
$ go run main.go <pubkey>
IP: <ipv6ip>
Subnet: <ipv6net>

*/
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/famedly/yggdrasil-keys-go/src/address"
	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage:", os.Args[0], "<pubkey>")
		os.Exit(1)
	}
	pub, err := keys.DecodeHex(os.Args[1])
	if err != nil {
		fmt.Println("Failed to decode provided public key:", err)
		os.Exit(1)
	}
	addr := address.AddrForKey(pub)
	if addr == nil {
		fmt.Printf("Provided public key must be %d bytes\n", keys.PublicKeySize)
		os.Exit(1)
	}
	snet := address.SubnetForKey(pub)
	ipnet := net.IPNet{
		IP:   append(snet[:], 0, 0, 0, 0, 0, 0, 0, 0),
		Mask: net.CIDRMask(address.SubnetPrefixLength, 128),
	}
	fmt.Println("IP:", net.IP(addr[:]).String())
	fmt.Println("Subnet:", ipnet.String())
}
