package main

import (
	"github.com/smartdata/ssm-dashboard/cmd/ssmctl/cmd"
	"github.com/smartdata/ssm-dashboard/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	cmd.Execute()
}
