// Package opensearch ships classification records to an OpenSearch cluster.
//
// New builds a client from Config and checks the cluster is reachable.
// Indexer buffers JSON documents and writes them through the bulk API once
// BatchSize documents are queued, on Flush, or on Close:
//
//	client, err := opensearch.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	ix := opensearch.NewIndexer(client, cfg.Index, opensearch.WithBatchSize(cfg.BatchSize))
//	defer ix.Close(ctx)
//	_ = ix.Add(ctx, record)
//
// Rejected documents are reported as ErrBulkFailed with the first reason.
package opensearch
