/*

This file generates crypto keys.
It prints out a new set of keys each time it finds a "better" one.
"Better" means a higher strength, i.e. more leading one bits in the public
key. Leading ones compress out of the address, so a stronger key keeps more
of its own bits visible in the derived IPv6 address.

With -tries N it instead scores a fixed number of candidate keys, showing
progress along the way, and prints the best result once done.

*/
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"runtime"

	"github.com/cheggaaa/pb/v3"
	"github.com/gologme/log"
	"github.com/olekukonko/tablewriter"

	"github.com/famedly/yggdrasil-keys-go/src/address"
	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

var keyTries = flag.Int("tries", 0, "number of keys to try before taking the best one, 0 to search forever")

type keySet struct {
	priv keys.PrivateKey
	pub  keys.PublicKey
	ip   string
}

func main() {
	flag.Parse()
	logger := log.New(os.Stderr, "", log.Flags())
	logger.EnableLevel("error")

	if *keyTries > 0 {
		printTable(boundedSearch(*keyTries, logger))
		return
	}

	threads := runtime.GOMAXPROCS(0)
	var threadChannels []chan keys.PublicKey
	var currentBest keys.PublicKey
	newKeys := make(chan keySet, threads)

	for i := 0; i < threads; i++ {
		threadChannels = append(threadChannels, make(chan keys.PublicKey, threads))
		go doKeys(newKeys, threadChannels[i], logger)
	}

	for {
		newKey := <-newKeys
		if !isBetter(currentBest, newKey.pub) {
			continue
		}
		currentBest = newKey.pub
		for _, channel := range threadChannels {
			select {
			case channel <- newKey.pub:
			default:
			}
		}
		fmt.Println("--------------------------------------------------------------------------------")
		fmt.Println("Priv:", keys.EncodeHex(newKey.priv))
		fmt.Println("Pub:", keys.EncodeHex(newKey.pub))
		fmt.Println("Strength:", newKey.pub.Strength())
		fmt.Println("IP:", newKey.ip)
	}
}

func isBetter(oldPub, newPub keys.PublicKey) bool {
	if len(oldPub) == 0 {
		return true
	}
	return newPub.Strength() > oldPub.Strength()
}

func doKeys(out chan<- keySet, in <-chan keys.PublicKey, logger *log.Logger) {
	var bestPub keys.PublicKey
	for {
		select {
		case newBest := <-in:
			if isBetter(bestPub, newBest) {
				bestPub = newBest
			}
		default:
			pair, err := keys.NewKeyPair(nil)
			if err != nil {
				logger.Errorln("Key generation failed:", err)
				os.Exit(1)
			}
			if !isBetter(bestPub, pair.Public) {
				continue
			}
			bestPub = pair.Public
			addr := address.AddrForKey(pair.Public)
			out <- keySet{pair.Private, pair.Public, net.IP(addr[:]).String()}
		}
	}
}

func boundedSearch(tries int, logger *log.Logger) keySet {
	bar := pb.StartNew(tries)
	var best keySet
	for i := 0; i < tries; i++ {
		pair, err := keys.NewKeyPair(nil)
		if err != nil {
			logger.Errorln("Key generation failed:", err)
			os.Exit(1)
		}
		if len(best.pub) == 0 || isBetter(best.pub, pair.Public) {
			addr := address.AddrForKey(pair.Public)
			best = keySet{pair.Private, pair.Public, net.IP(addr[:]).String()}
		}
		bar.Increment()
	}
	bar.Finish()
	return best
}

func printTable(best keySet) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.SetAutoWrapText(false)
	table.Append([]string{"Private key:", keys.EncodeHex(best.priv)})
	table.Append([]string{"Public key:", keys.EncodeHex(best.pub)})
	table.Append([]string{"Strength:", fmt.Sprintf("%d", best.pub.Strength())})
	table.Append([]string{"IP address:", best.ip})
	table.Render()
}
