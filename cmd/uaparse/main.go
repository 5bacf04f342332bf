// Command uaparse classifies user-agent strings read line by line from a
// file, standard input or an S3 object.
//
//	uaparse agents.txt
//	cat agents.txt | uaparse --json
//	uaparse s3://logs/agents.txt --opensearch-index user-agents
//
// Each line whose trimmed length exceeds five characters produces one record:
//
//	"<line>"|"<os label>"|"<agent label>"|"<model>"
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
