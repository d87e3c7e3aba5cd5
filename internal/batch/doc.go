// Package batch loads and runs batch plans: many independent parent-prefix
// computations read from one file.
//
// Three formats are understood, chosen by file extension:
//
//   - .yaml / .yml: a plan document parsed with gopkg.in/yaml.v3
//   - .json / .jsonc: the same document as JSONC, with comments and
//     trailing commas stripped by github.com/tidwall/jsonc
//   - anything else (and stdin): one comma-separated list per line, blank
//     lines and # comments ignored
//
// A plan document looks like:
//
//	family: ipv4
//	sets:
//	  - name: branch-office
//	    lengths: [26, 27, 28, 29]
//	  - name: dc-v6
//	    family: ipv6
//	    lengths: "96,96,97,97"
//
// Each set is computed on its own; a failing set never stops the rest.
package batch
