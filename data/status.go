// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
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
package data

// ProfitStatusValues is the closed vocabulary for the profit classification.
var ProfitStatusValues = map[string]bool{
	"Profit": true,
	"Loss":   true,
	"N/A":    true,
}

// ROEStatusValues is the closed vocabulary for the return-on-equity band.
var ROEStatusValues = map[string]bool{
	"Excellent": true,
	"Good":      true,
	"Average":   true,
	"Weak":      true,
	"Negative":  true,
	"N/A":       true,
}

// LiquidityStatusValues is the closed vocabulary for the current-ratio band.
var LiquidityStatusValues = map[string]bool{
	"Strong":   true,
	"Moderate": true,
	"Weak":     true,
	"Critical": true,
	"N/A":      true,
}

// LeverageStatusValues is the closed vocabulary for the debt-to-equity band.
var LeverageStatusValues = map[string]bool{
	"Low":      true,
	"Moderate": true,
	"High":     true,
	"Critical": true,
	"N/A":      true,
}
