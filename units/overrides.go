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

// Override is a curated scaling decision for a ticker whose reporting unit is
// known from the filings themselves. Overrides win over every heuristic.
type Override struct {
	Multiplier float64
	Unit       string
	Company    string
}

var overrides = map[string]Override{
	"2222": {Multiplier: 1e6, Unit: UnitMillions, Company: "Saudi Arabian Oil Co."},
	"2010": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Basic Industries Corp."},
	"7010": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Telecom Co."},
	"5110": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Electricity Co."},
	"7020": {Multiplier: 1e3, Unit: UnitThousands, Company: "Etihad Etisalat Co."},
	"7030": {Multiplier: 1e3, Unit: UnitThousands, Company: "Mobile Telecommunication Company Saudi Arabia"},
	"2280": {Multiplier: 1e3, Unit: UnitThousands, Company: "Almarai Co."},
	"2050": {Multiplier: 1e3, Unit: UnitThousands, Company: "Savola Group"},
	"4013": {Multiplier: 1e6, Unit: UnitMillions, Company: "Dr. Sulaiman Al Habib Medical Services Group"},
	"2380": {Multiplier: 1e3, Unit: UnitThousands, Company: "Rabigh Refining and Petrochemical Co."},
	"2290": {Multiplier: 1e3, Unit: UnitThousands, Company: "Yanbu National Petrochemical Co."},
	"2310": {Multiplier: 1e3, Unit: UnitThousands, Company: "Sahara International Petrochemical Co."},
	"2330": {Multiplier: 1e3, Unit: UnitThousands, Company: "Advanced Petrochemical Co."},
	"2060": {Multiplier: 1e3, Unit: UnitThousands, Company: "National Industrialization Co."},
	"2082": {Multiplier: 1e3, Unit: UnitThousands, Company: "ACWA POWER Co."},
	"2083": {Multiplier: 1e3, Unit: UnitThousands, Company: "The Power and Water Utility Company for Jubail and Yanbu"},
	"2020": {Multiplier: 1e3, Unit: UnitThousands, Company: "SABIC Agri-Nutrients Co."},
	"4001": {Multiplier: 1e3, Unit: UnitThousands, Company: "Abdullah Al Othaim Markets Co."},
	"4003": {Multiplier: 1e3, Unit: UnitThousands, Company: "United Electronics Co."},
	"4030": {Multiplier: 1e3, Unit: UnitThousands, Company: "National Shipping Company of Saudi Arabia"},
	"4100": {Multiplier: 1e3, Unit: UnitThousands, Company: "Makkah Construction and Development Co."},
	"4190": {Multiplier: 1e3, Unit: UnitThousands, Company: "Jarir Marketing Co."},
	"4250": {Multiplier: 1e3, Unit: UnitThousands, Company: "Jabal Omar Development Co."},
	"2170": {Multiplier: 1e3, Unit: UnitThousands, Company: "Alujain Corp."},
	"2223": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Aramco Base Oil Co."},
	"2230": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Chemical Co."},
	"2240": {Multiplier: 1e3, Unit: UnitThousands, Company: "Zamil Industrial Investment Co."},
	"4017": {Multiplier: 1e3, Unit: UnitThousands, Company: "Dr. Soliman Abdel Kader Fakeeh Hospital Co."},
	"4031": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Ground Services Co."},
	"4300": {Multiplier: 1e3, Unit: UnitThousands, Company: "Dar Alarkan Real Estate Development Co."},
	"4006": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Marketing Co."},
	"2270": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudia Dairy and Foodstuff Co."},
	"1302": {Multiplier: 1e3, Unit: UnitThousands, Company: "Bawan Co."},
	"1303": {Multiplier: 1e3, Unit: UnitThousands, Company: "Electrical Industries Co."},
	"4020": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Real Estate Co."},
	"4260": {Multiplier: 1e3, Unit: UnitThousands, Company: "United International Transportation Co."},
	"6015": {Multiplier: 1e3, Unit: UnitThousands, Company: "Americana Restaurants International PLC"},
	"4263": {Multiplier: 1e3, Unit: UnitThousands, Company: "SAL Saudi Logistics Services Co."},
	"3030": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Cement Co."},
	"2070": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Pharmaceutical Industries and Medical Appliances Corp."},
	"4040": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Public Transport Co."},
	"2040": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Ceramic Co."},
	"2190": {Multiplier: 1e3, Unit: UnitThousands, Company: "Sustained Infrastructure Holding Co."},
	"3080": {Multiplier: 1e3, Unit: UnitThousands, Company: "Eastern Province Cement Co."},
	"2200": {Multiplier: 1e3, Unit: UnitThousands, Company: "Arabian Pipes Co."},
	"2283": {Multiplier: 1e3, Unit: UnitThousands, Company: "First Milling Co."},
	"3040": {Multiplier: 1e3, Unit: UnitThousands, Company: "Qassim Cement Co."},
	"3010": {Multiplier: 1e3, Unit: UnitThousands, Company: "Arabian Cement Co."},
	"1214": {Multiplier: 1e3, Unit: UnitThousands, Company: "Al Hassan Ghazi Ibrahim Shaker Co."},
	"2140": {Multiplier: 1e3, Unit: UnitThousands, Company: "AYYAN Investment Co."},
	"4130": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Darb Investment Co."},
	"4140": {Multiplier: 1e3, Unit: UnitThousands, Company: "Saudi Industrial Export Co."},
	"4170": {Multiplier: 1e3, Unit: UnitThousands, Company: "Tourism Enterprise Co."},
	"6020": {Multiplier: 1e3, Unit: UnitThousands, Company: "Al Gassim Investment Holding Co."},
	"7202": {Multiplier: 1e3, Unit: UnitThousands, Company: "Arabian Internet and Communications Services Co."},
}
