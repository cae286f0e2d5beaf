// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cmd implements the coastcamdb command line.

Every command opens the database named by the persistent flags, the
environment or a credentials file (see package cliparse) and creates the
schema if it is missing:

	coastcamdb add -f rows.yaml
	coastcamdb read site 7654321
	coastcamdb read value camera K cam1
	coastcamdb update camera z 30.5 --id cam1
	coastcamdb update-id camera cam1 cam9
	coastcamdb yaml 1234567 --time 1700000000 --out ./yaml_files
	coastcamdb export site 7654321 --out ./saved_csv
	coastcamdb serve -p 3318
	coastcamdb shell

The shell reads further commands from stdin and runs them over the same
connection until quit or exit.
*/
package cmd
