package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/vmedithon/chaincode/medical-records/contracts"
)

func main() {
	identityContract := new(contracts.IdentityContract)
	documentContract := new(contracts.DocumentContract)
	accessContract := new(contracts.AccessContract)

	chaincode, err := contractapi.NewChaincode(
		identityContract,
		documentContract,
		accessContract,
	)
	if err != nil {
		log.Panicf("Error creating medical-records chaincode: %v", err)
	}

	if err := chaincode.Start(); err != nil {
		log.Panicf("Error starting medical-records chaincode: %v", err)
	}
}
