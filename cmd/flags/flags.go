// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kurafs/zdebug/pkg/cli"
	"github.com/kurafs/zdebug/pkg/zdebug"
)

var FlagsCmd = &cli.Command{
	Run:       flagsCmdRun,
	UsageLine: "flags [-mask n | -set list]",
	Short:     "decode and encode instrumentation masks",
	Long: `
Flags translates between instrumentation masks and category names.

With -mask, the given integer (decimal, or hex with a 0x prefix) is decoded
into the categories it enables. With -set, a comma-separated list of category
names is encoded into a mask. Without either, every category is listed with
its bit.
    `,
}

func flagsCmdRun(cmd *cli.Command, args []string) error {
	var mask, set string
	cmd.FlagSet.StringVar(&mask, "mask", "", "Mask to decode, e.g. 2049 or 0x801")
	cmd.FlagSet.StringVar(&set, "set", "", "Comma-separated category names to encode, e.g. trim,dprintf")
	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if mask != "" && set != "" {
		return cli.CmdParseError(errors.New("-mask and -set are mutually exclusive"))
	}

	switch {
	case mask != "":
		return decode(os.Stdout, mask)
	case set != "":
		return encode(os.Stdout, set)
	default:
		list(os.Stdout)
		return nil
	}
}

func decode(w io.Writer, mask string) error {
	v, err := strconv.ParseUint(mask, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid mask %q: %v", mask, err)
	}
	fmt.Fprintf(w, "%#x = %s\n", v, zdebug.Category(v))
	return nil
}

func encode(w io.Writer, set string) error {
	c, err := zdebug.ParseCategories(set)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d (%#x) = %s\n", uint32(c), uint32(c), c)
	return nil
}

func list(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "BIT\tVALUE\tCATEGORY")
	for _, c := range zdebug.Categories() {
		bit := 0
		for v := uint32(c); v > 1; v >>= 1 {
			bit++
		}
		fmt.Fprintf(tw, "%d\t%#x\t%s\n", bit, uint32(c), c)
	}
	tw.Flush()
}
