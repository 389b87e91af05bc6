// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/niklasfrykholm/cfgdata"
	"github.com/niklasfrykholm/cfgdata/jsonparser"
)

func prettyPrint(v any) string {
	buf, err := json.Marshal(v)
	if err != nil {
		log.Println("JSON marshal error: ", err)
		return ""
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		log.Println("JSON indent error: ", err)
		return string(buf)
	}
	return pretty.String()
}

// toAny walks loc into a generic Go value suitable for encoding/json,
// recursing through arrays and objects.
func toAny(cd *cfgdata.ConfigData, loc cfgdata.Loc) any {
	switch cd.Type(loc) {
	case cfgdata.TypeNull:
		return nil
	case cfgdata.TypeFalse:
		return false
	case cfgdata.TypeTrue:
		return true
	case cfgdata.TypeNumber:
		return cd.ToNumber(loc)
	case cfgdata.TypeString:
		return cd.ToString(loc)
	case cfgdata.TypeArray:
		n := cd.ArraySize(loc)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = toAny(cd, cd.ArrayItem(loc, i))
		}
		return out
	case cfgdata.TypeObject:
		n := cd.ObjectSize(loc)
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			out[cd.ObjectKeyString(loc, i)] = toAny(cd, cd.ObjectValue(loc, i))
		}
		return out
	default:
		return nil
	}
}

func settingsFromFlags(cmd *cobra.Command) jsonparser.Settings {
	flag := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return jsonparser.Settings{
		UnquotedKeys:           flag("unquoted-keys"),
		CComments:              flag("c-comments"),
		ImplicitRootObject:     flag("implicit-root-object"),
		OptionalCommas:         flag("optional-commas"),
		EqualsForColon:         flag("equals-for-colon"),
		PythonMultilineStrings: flag("python-multiline-strings"),
		SkipEscapeSequences:    flag("skip-escape-sequences"),
		AllowControlCharacters: flag("allow-control-characters"),
	}
}

func dump(cmd *cobra.Command, args []string) {
	settings := settingsFromFlags(cmd)

	var cd *cfgdata.ConfigData
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Error while reading stdin: %s", err)
		}
		src, err := cfgdata.NormalizeSource(data)
		if err != nil {
			log.Fatalf("Error while normalizing source: %s", err)
		}
		cd = cfgdata.Make(nil, nil, 0, 0)
		if err := jsonparser.ParseWithSettings(src, cd, settings); err != nil {
			log.Fatalf("Error while parsing: %s", err)
		}
	} else {
		var err error
		cd, err = cfgdata.LoadFile(args[0], &cfgdata.LoadOptions{Settings: settings})
		if err != nil {
			log.Fatalf("Error while loading %s: %s", args[0], err)
		}
	}
	defer cd.Free()

	fmt.Println(prettyPrint(toAny(cd, cd.Root())))
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "cfgdump",
		Short: "A relaxed-JSON config arena dumper",
		Long:  "cfgdump parses a JSON (or relaxed-JSON) document into a cfgdata arena and re-renders it as standard JSON",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump [file]",
		Short: "Parses a document and prints it back as indented JSON",
		Long:  "Parses a document (or stdin, if no file or '-' is given) under the selected relaxations and prints it back as indented JSON",
		Args:  cobra.MaximumNArgs(1),
		Run:   dump,
	}

	dumpCmd.Flags().Bool("unquoted-keys", false, "Allow unquoted object keys")
	dumpCmd.Flags().Bool("c-comments", false, "Allow // and /* */ comments")
	dumpCmd.Flags().Bool("implicit-root-object", false, "Allow omitting the outermost { }")
	dumpCmd.Flags().Bool("optional-commas", false, "Treat commas as optional whitespace")
	dumpCmd.Flags().Bool("equals-for-colon", false, "Allow '=' in place of ':'")
	dumpCmd.Flags().Bool("python-multiline-strings", false, `Allow """ triple-quoted strings`)
	dumpCmd.Flags().Bool("skip-escape-sequences", false, "Treat backslash as an ordinary character")
	dumpCmd.Flags().Bool("allow-control-characters", false, "Allow raw control characters in strings")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
