package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/gologme/log"
	gsyslog "github.com/hashicorp/go-syslog"
	"github.com/hjson/hjson-go/v4"

	"github.com/famedly/yggdrasil-keys-go/src/address"
	"github.com/famedly/yggdrasil-keys-go/src/config"
	"github.com/famedly/yggdrasil-keys-go/src/keys"
	"github.com/famedly/yggdrasil-keys-go/src/version"
)

// The main function is responsible for parsing the configuration and
// answering key and address queries against it.
func main() {
	genconf := flag.Bool("genconf", false, "print a new config to stdout")
	useconf := flag.Bool("useconf", false, "read HJSON/JSON config from stdin")
	useconffile := flag.String("useconffile", "", "read HJSON/JSON config from specified file path")
	normaliseconf := flag.Bool("normaliseconf", false, "use in combination with either -useconf or -useconffile, outputs your configuration normalised")
	exportkey := flag.Bool("exportkey", false, "use in combination with either -useconf or -useconffile, outputs your private key in PEM format")
	confjson := flag.Bool("json", false, "print configuration from -genconf or -normaliseconf as JSON instead of HJSON")
	ver := flag.Bool("version", false, "prints the version of this build")
	logto := flag.String("logto", "stdout", "file path to log to, \"syslog\" or \"stdout\"")
	getaddr := flag.Bool("address", false, "use in combination with either -useconf or -useconffile, outputs your IPv6 address")
	getsnet := flag.Bool("subnet", false, "use in combination with either -useconf or -useconffile, outputs your IPv6 subnet")
	getpkey := flag.Bool("publickey", false, "use in combination with either -useconf or -useconffile, outputs your public key")
	loglevel := flag.String("loglevel", "info", "loglevel to enable")
	flag.Parse()

	// Create a new logger that logs output to stdout.
	var logger *log.Logger
	switch *logto {
	case "stdout":
		logger = log.New(os.Stdout, "", log.Flags())

	case "syslog":
		if syslogger, err := gsyslog.NewLogger(gsyslog.LOG_NOTICE, "DAEMON", version.BuildName()); err == nil {
			logger = log.New(syslogger, "", log.Flags()&^(log.Ldate|log.Ltime))
		}

	default:
		if logfd, err := os.OpenFile(*logto, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			logger = log.New(logfd, "", log.Flags())
		}
	}
	if logger == nil {
		logger = log.New(os.Stdout, "", log.Flags())
		logger.Warnln("Logging defaulting to stdout")
	}
	if *normaliseconf {
		setLogLevel("error", logger)
	} else {
		setLogLevel(*loglevel, logger)
	}

	cfg := &config.NodeConfig{}
	var err error
	switch {
	case *ver:
		fmt.Println("Build name:", version.BuildName())
		fmt.Println("Build version:", version.BuildVersion())
		return

	case *useconf:
		if _, err := cfg.ReadFrom(os.Stdin); err != nil {
			logger.Errorln("Configuration parse failed:", err)
			os.Exit(1)
		}

	case *useconffile != "":
		f, err := os.Open(*useconffile)
		if err != nil {
			logger.Errorln("Configuration file open failed:", err)
			os.Exit(1)
		}
		if _, err := cfg.ReadFrom(f); err != nil {
			logger.Errorln("Configuration parse failed:", err)
			os.Exit(1)
		}
		_ = f.Close()

	case *genconf:
		cfg = config.GenerateConfig()
		var bs []byte
		if *confjson {
			bs, err = json.MarshalIndent(cfg, "", "  ")
		} else {
			bs, err = hjson.Marshal(cfg)
		}
		if err != nil {
			panic(err)
		}
		fmt.Println(string(bs))
		return

	default:
		fmt.Println("Usage:")
		flag.PrintDefaults()

		if *getaddr || *getsnet || *getpkey {
			fmt.Println("\nError: You need to specify some config data using -useconf or -useconffile.")
		}
		return
	}

	pair, err := cfg.KeyPair()
	if err != nil {
		logger.Errorln("Configured keys are unusable:", err)
		os.Exit(1)
	}

	switch {
	case *getaddr:
		addr := address.AddrForKey(pair.Public)
		ip := net.IP(addr[:])
		fmt.Println(ip.String())

	case *getsnet:
		snet := address.SubnetForKey(pair.Public)
		ipnet := net.IPNet{
			IP:   append(snet[:], 0, 0, 0, 0, 0, 0, 0, 0),
			Mask: net.CIDRMask(address.SubnetPrefixLength, 128),
		}
		fmt.Println(ipnet.String())

	case *getpkey:
		fmt.Println(keys.EncodeHex(pair.Public))

	case *normaliseconf:
		cfg.PrivateKey = pair.HexJoined()
		cfg.PublicKey = keys.EncodeHex(pair.Public)
		var bs []byte
		if *confjson {
			bs, err = json.MarshalIndent(cfg, "", "  ")
		} else {
			bs, err = hjson.Marshal(cfg)
		}
		if err != nil {
			panic(err)
		}
		fmt.Println(string(bs))

	case *exportkey:
		pem, err := cfg.MarshalPEMPrivateKey()
		if err != nil {
			panic(err)
		}
		fmt.Println(string(pem))

	default:
		logger.Infof("Your public key is %s", keys.EncodeHex(pair.Public))
		addr, snet := address.AddrForKey(pair.Public), address.SubnetForKey(pair.Public)
		logger.Infof("Your IPv6 address is %s", net.IP(addr[:]).String())
		ipnet := net.IPNet{
			IP:   append(snet[:], 0, 0, 0, 0, 0, 0, 0, 0),
			Mask: net.CIDRMask(address.SubnetPrefixLength, 128),
		}
		logger.Infof("Your IPv6 subnet is %s", ipnet.String())
	}
}

func setLogLevel(loglevel string, logger *log.Logger) {
	levels := [...]string{"error", "warn", "info", "debug", "trace"}
	loglevel = strings.ToLower(loglevel)

	contains := func() bool {
		for _, l := range levels {
			if l == loglevel {
				return true
			}
		}
		return false
	}

	if !contains() { // set default log level
		logger.Infoln("Loglevel parse failed. Set default level(info)")
		loglevel = "info"
	}

	for _, l := range levels {
		logger.EnableLevel(l)
		if l == loglevel {
			break
		}
	}
}
