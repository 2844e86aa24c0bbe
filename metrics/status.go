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
package metrics

// profitBand classifies the sign of net profit.
func profitBand(netProfit float64) string {
	switch {
	case netProfit > 0:
		return "Profit"
	case netProfit < 0:
		return "Loss"
	default:
		return "N/A"
	}
}

// roeBand classifies return on equity (percentage form).
func roeBand(roe float64) string {
	switch {
	case roe > 20:
		return "Excellent"
	case roe >= 15:
		return "Good"
	case roe >= 10:
		return "Average"
	case roe >= 0:
		return "Weak"
	default:
		return "Negative"
	}
}

// liquidityBand classifies the current ratio.
func liquidityBand(currentRatio float64) string {
	switch {
	case currentRatio >= 2:
		return "Strong"
	case currentRatio >= 1:
		return "Moderate"
	case currentRatio >= 0.5:
		return "Weak"
	default:
		return "Critical"
	}
}

// leverageBand classifies debt-to-equity (percentage form). Four bands, with
// the Critical band starting at 300%.
func leverageBand(debtToEquity float64) string {
	switch {
	case debtToEquity < 50:
		return "Low"
	case debtToEquity < 150:
		return "Moderate"
	case debtToEquity < 300:
		return "High"
	default:
		return "Critical"
	}
}
