// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/SonorousGuardian/risk-management-dashboard/pkg/validation"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <risk-id>",
	Short: "Flip a risk's mitigation flag",
	Long: `Toggles the is_mitigated flag of one risk.

The flag is independent of the workflow status; toggling never changes
the status field.

Examples:
  riskdash toggle RISK-001`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	riskID := args[0]
	if err := validation.ValidateRiskID(riskID); err != nil {
		return err
	}

	var resp datatypes.ToggleMitigationResponse
	path := fmt.Sprintf("/v1/risks/%s/toggle-mitigated", riskID)
	if err := apiCall(cmd.Context(), http.MethodPost, path, nil, &resp); err != nil {
		return err
	}

	fmt.Println(resp.Message)
	fmt.Printf("  is_mitigated: %v\n", resp.IsMitigated)
	return nil
}
