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

import "github.com/tadawul-vault/tasidata/data"

// InstitutionType distinguishes issuers whose statements do not follow the
// standard industrial layout. Banks report net interest income rather than
// revenue and insurers report premiums, so revenue-based margins are
// meaningless for both.
type InstitutionType string

const (
	Standard  InstitutionType = "standard"
	Bank      InstitutionType = "bank"
	Insurance InstitutionType = "insurance"
	Finance   InstitutionType = "finance"
)

var bankTickers = map[int]string{
	1010: "Riyad Bank",
	1020: "Bank Aljazira",
	1030: "Saudi Investment Bank",
	1050: "Banque Saudi Fransi",
	1060: "Saudi Awwal Bank",
	1080: "Arab National Bank",
	1120: "Al Rajhi Bank",
	1140: "Bank Albilad",
	1150: "Alinma Bank",
	1180: "The Saudi National Bank",
}

var insuranceTickers = map[int]string{
	8010: "The Company for Cooperative Insurance",
	8012: "Aljazira Takaful Taawuni Co.",
	8020: "Malath Cooperative Insurance Co.",
	8030: "The Mediterranean and Gulf Insurance Co.",
	8040: "Allianz Saudi Fransi Cooperative Insurance",
	8050: "Salama Cooperative Insurance Co.",
	8060: "Walaa Cooperative Insurance Co.",
	8070: "Arabian Shield Cooperative Insurance",
	8100: "Saudi Arabian Cooperative Insurance",
	8120: "Gulf Union Cooperative Insurance Co.",
	8150: "Allied Cooperative Insurance Group",
	8160: "Arabia Insurance Cooperative Co.",
	8170: "Al-Etihad Cooperative Insurance Co.",
	8180: "Al Sagr Cooperative Insurance Co.",
	8190: "United Cooperative Assurance Co.",
	8200: "Saudi Re for Cooperative Reinsurance",
	8230: "Al-Rajhi Company for Cooperative Insurance",
	8240: "CHUBB Arabia Cooperative Insurance",
	8250: "AXA Cooperative Insurance Co.",
	8260: "Gulf General Cooperative Insurance",
	8280: "Al Alamiya for Cooperative Insurance",
	8300: "Wataniya Insurance Co.",
	8310: "Amana Cooperative Insurance Co.",
	8311: "Saudi Enaya Cooperative Insurance Co.",
}

var financeTickers = map[int]string{
	1182: "Amlak International Finance Co.",
	1183: "Saudi Home Loans Co.",
}

// Classify determines the institution type from the ticker.
func Classify(ticker string) InstitutionType {
	n := data.TickerNumber(ticker)
	switch {
	case bankTickers[n] != "":
		return Bank
	case insuranceTickers[n] != "":
		return Insurance
	case financeTickers[n] != "":
		return Finance
	default:
		return Standard
	}
}

// PrimaryIncomeName returns how the top-line item should be labelled for the
// institution type: net interest income for banks, gross written premiums for
// insurers, plain revenue otherwise.
func PrimaryIncomeName(institution InstitutionType) string {
	switch institution {
	case Bank:
		return "net_interest_income"
	case Insurance:
		return "gross_written_premiums"
	default:
		return "revenue"
	}
}
