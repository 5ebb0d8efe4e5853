package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/expense-backend/infra/cloudrun"
	"github.com/GregMSThompson/expense-backend/infra/docker"
	"github.com/GregMSThompson/expense-backend/infra/firestore"
	"github.com/GregMSThompson/expense-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		if err := firestore.SetupFirestore(ctx, prov); err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, repo)
		return err
	})
}
