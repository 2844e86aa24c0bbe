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
package units

// Benchmark holds the publicly-known approximate annual revenue for a large
// TASI company, in billions of riyals. Comparing a reported revenue against
// the benchmark reveals the scale the filing was reported in.
type Benchmark struct {
	Name             string
	ExpectedBillions float64
}

var benchmarks = map[string]Benchmark{
	"2222": {Name: "Saudi Aramco", ExpectedBillions: 1600},
	"2010": {Name: "SABIC", ExpectedBillions: 175},
	"7010": {Name: "STC", ExpectedBillions: 76},
	"5110": {Name: "Saudi Electricity", ExpectedBillions: 89},
	"1180": {Name: "Al Rajhi Bank", ExpectedBillions: 50},
	"7020": {Name: "Mobily", ExpectedBillions: 18},
	"7030": {Name: "Zain KSA", ExpectedBillions: 10},
	"2280": {Name: "Almarai", ExpectedBillions: 21},
	"2050": {Name: "Savola", ExpectedBillions: 24},
	"1211": {Name: "Ma'aden", ExpectedBillions: 33},
	"4013": {Name: "Dr. Sulaiman Al Habib", ExpectedBillions: 11},
	"2380": {Name: "Petro Rabigh", ExpectedBillions: 39},
	"4164": {Name: "Nahdi Medical", ExpectedBillions: 9.4},
	"4200": {Name: "Aldrees Petroleum", ExpectedBillions: 19},
	"4050": {Name: "SASCO", ExpectedBillions: 10},
}
